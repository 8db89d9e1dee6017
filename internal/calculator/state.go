package calculator

// State is the working state of one wizard. It only changes through
// Controller.Reduce.
type State struct {
	Step              Step         `json:"step"`
	SelectedServiceID string       `json:"selected_service_id,omitempty"`
	Quantity          int          `json:"quantity"`
	MaterialTier      MaterialTier `json:"material_tier,omitempty"`
}

func InitialState() State {
	return State{
		Step:     StepServiceSelection,
		Quantity: MinQuantity,
	}
}

type ActionType string

const (
	ActionSelectService ActionType = "select_service"
	ActionAdvance       ActionType = "advance"
	ActionRetreat       ActionType = "retreat"
	ActionSetQuantity   ActionType = "set_quantity"
	ActionSetMaterial   ActionType = "set_material"
	ActionReset         ActionType = "reset"
)

type Action struct {
	Type      ActionType   `json:"type"`
	ServiceID string       `json:"service_id,omitempty"`
	Quantity  int          `json:"quantity,omitempty"`
	Material  MaterialTier `json:"material,omitempty"`
}

func SelectService(id string) Action { return Action{Type: ActionSelectService, ServiceID: id} }

func Advance() Action { return Action{Type: ActionAdvance} }

func Retreat() Action { return Action{Type: ActionRetreat} }

func SetQuantity(n int) Action { return Action{Type: ActionSetQuantity, Quantity: n} }

func SetMaterialTier(tier MaterialTier) Action { return Action{Type: ActionSetMaterial, Material: tier} }

func Reset() Action { return Action{Type: ActionReset} }
