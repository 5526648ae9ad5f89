package configuration

// Well-known probe ids the heater and fan control depends on.
const (
	ProbeAirTop    = "air_top"
	ProbeAirBottom = "air_bottom"
	ProbeMeat1     = "meat_1"
)

type ProbeConfig struct {
	ID string `json:"id"`
	// Sck, Cs and So are the BCM offsets of the bit-bang SPI lines
	// of the MAX6675 this probe is attached to.
	Sck int `json:"sck"`
	Cs  int `json:"cs"`
	So  int `json:"so"`
	// Offset is added to every converted fahrenheit reading to
	// calibrate the thermocouple.
	Offset int `json:"offset"`
}
