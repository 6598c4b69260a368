package models

// FlightSummary aggregates one flight's manifest. Weights are summed across
// rows; the representative flight attributes come from the first row when the
// manifest has any, otherwise they are parsed back out of the flight id.
type FlightSummary struct {
	FlightID        string  `json:"flight_id"`
	PassengerCount  int     `json:"passenger_count"`
	TicketCount     int     `json:"ticket_count"`
	TotalBodyWeight float64 `json:"total_body_weight"`
	TotalBagWeight  float64 `json:"total_bag_weight"`
	TotalBags       int     `json:"total_bags"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	Route           string  `json:"route"`
	Registration    string  `json:"registration"`
	Pilot           string  `json:"pilot"`
}

// FlightFields is the set of values an admin supplies when creating a share
// link, and the set prefilled into the booking form via query params.
type FlightFields struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	Route        string `json:"route"`
	Registration string `json:"reg"`
	Pilot        string `json:"pilot"`
}
