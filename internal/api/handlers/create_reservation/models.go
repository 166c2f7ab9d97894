package create_reservation

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SlotID int64 `json:"slotId"`
}
