package toggle_slot

// ToggleSlotRequest HTTP request model
// Без поля active флаг инвертируется, с полем - устанавливается явно
type ToggleSlotRequest struct {
	Active *bool `json:"active,omitempty"`
}
