package model

// AvailabilitySlot is a doctor-declared window of bookable capacity.
// BookedSlots is informational: nothing in the engine increments it, and
// approval never consults the ledger.
type AvailabilitySlot struct {
	SlotID         string `json:"slotId"`
	DoctorUsername string `json:"doctorUsername"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	SlotsPerHour   int    `json:"slotsPerHour"`
	MaxCapacity    int    `json:"maxCapacity"`
	BookedSlots    int    `json:"bookedSlots"`
	CreatedDate    string `json:"createdDate"`
}

type AddSlotRequest struct {
	Date         string `json:"date" binding:"required,dateymd"`
	StartTime    string `json:"startTime" binding:"required,clocktime"`
	EndTime      string `json:"endTime" binding:"required,clocktime"`
	SlotsPerHour int    `json:"slotsPerHour" binding:"required,min=1"`
}
