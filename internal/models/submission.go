package models

// Submission is one passenger booking, as recorded in the flight manifest
// and rendered onto the ticket PDF.
type Submission struct {
	TicketNo     int64  `json:"ticket_no"`
	Timestamp    string `json:"timestamp"`
	Name         string `json:"name"`
	Email        string `json:"email"` // may hold a comma-separated list
	BodyWeight   string `json:"body_weight"`
	NumBags      string `json:"num_bags"`
	BagWeight    string `json:"bag_weight"`
	FlightDate   string `json:"flight_date"`
	FlightTime   string `json:"flight_time"`
	Route        string `json:"route"`
	Registration string `json:"registration"`
	Pilot        string `json:"pilot"`
	DGAck        bool   `json:"dg_ack"`
}
