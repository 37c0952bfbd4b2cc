package convo

// Callback payloads for the inline buttons the machine renders. The bot
// routes incoming callback queries back to machine methods by these values.
const (
	CallbackTypeIncome    = "type_income"
	CallbackTypeExpense   = "type_expense"
	CallbackConfirmYes    = "confirm_yes"
	CallbackConfirmEdit   = "confirm_edit"
	CallbackConfirmCancel = "confirm_cancel"
	CallbackConfirmAllYes = "confirm_all_yes"
	CallbackConfirmAllNo  = "confirm_all_no"
)

// Choice is one inline button.
type Choice struct {
	Label string
	Data  string
}

// Reply is a transport-neutral outgoing message. Choices, when set, render
// as an inline keyboard attached to the message. Recorded marks replies
// that report a successfully persisted transaction; the transport uses it
// to kick off message housekeeping.
type Reply struct {
	Text     string
	Markdown bool
	Choices  [][]Choice
	Recorded bool
}

// TypeChoices is the income/expense picker.
func TypeChoices() [][]Choice {
	return [][]Choice{{
		{Label: "Pemasukan", Data: CallbackTypeIncome},
		{Label: "Pengeluaran", Data: CallbackTypeExpense},
	}}
}

// ConfirmChoices is the yes/edit/cancel keyboard under a single-transaction
// confirmation. The receipt flow reuses it for total-only receipts.
func ConfirmChoices() [][]Choice {
	return [][]Choice{
		{
			{Label: "✅ Ya, Benar", Data: CallbackConfirmYes},
			{Label: "✏️ Input Ulang", Data: CallbackConfirmEdit},
		},
		{
			{Label: "🚫 Batal", Data: CallbackConfirmCancel},
		},
	}
}

func batchChoices() [][]Choice {
	return [][]Choice{{
		{Label: "✅ Benar Semua", Data: CallbackConfirmAllYes},
		{Label: "❌ Batal", Data: CallbackConfirmAllNo},
	}}
}
