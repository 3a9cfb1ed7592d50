package holiday

type UpsertHolidayRequest struct {
	Name        string `json:"name" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,oneof=national state company"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	CreatedBy   string `json:"createdBy"`
}
