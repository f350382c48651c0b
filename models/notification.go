package models

// OTPDeliveryPayload is the queued task payload that simulates SMS/email
// delivery of a login code in local auth mode.
type OTPDeliveryPayload struct {
	Contact  string        `json:"contact"`
	Method   ContactMethod `json:"method"`
	Code     string        `json:"code"`
	DeviceID string        `json:"deviceId"`
	FCMToken string        `json:"fcmToken,omitempty"`
}

// ReminderPayload is the queued task payload for a trip departure reminder.
type ReminderPayload struct {
	TripID   string `json:"tripId"`
	UserID   string `json:"userId"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	FireDate string `json:"fireDate"`
}
