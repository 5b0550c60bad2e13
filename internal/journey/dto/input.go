package dto

type StartJourneyInput struct {
	BatchID      string `validate:"required"`
	FarmName     string
	FarmLocation string
	Temperature  int16
	Humidity     uint16
	Caller       string
}

// UpdateStageInput carries the stage as submitted; it is parsed by the use case.
type UpdateStageInput struct {
	BatchID     string
	Stage       string
	HandlerName string
	Location    string
	Notes       string
	Temperature int16
	Humidity    uint16
	Caller      string
}
