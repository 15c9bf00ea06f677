package energy

const (
	// BTUPerKWh converts a heat gain in BTU to kWh of cooling load.
	BTUPerKWh = 3412.0

	// COP is the assumed coefficient of performance of the cooling plant.
	COP = 4.0

	// SkylightSHGC is applied to skylights, which carry no coefficient of their own.
	SkylightSHGC = 0.5

	// DefaultHours is the duration of an instantaneous estimate.
	DefaultHours = 1.0

	// GridEmissionFactor is kg CO2 per kWh for the Indian grid.
	GridEmissionFactor = 0.82

	// PeakDemandShare is the fraction of consumption attributed to peak demand.
	PeakDemandShare = 0.2
)

// Weights for the aggregated facade metric.
const (
	facadeWeight   = 0.25
	skylightWeight = 0.1
)
