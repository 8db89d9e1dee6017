package bot

const (
	CallbackService  = "svc"
	CallbackQuantity = "qty"
	CallbackMaterial = "mat"
	CallbackNav      = "nav"
	CallbackRequest  = "req"

	NavNext  = "next"
	NavBack  = "back"
	NavReset = "reset"
)

// Text input the chat is waiting for after the results step.
const (
	AwaitNone  = ""
	AwaitName  = "name"
	AwaitPhone = "phone"
)
