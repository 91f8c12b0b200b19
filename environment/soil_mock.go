package environment

import (
	"context"
)

// TemperatureBehaviorFunc defines the function signature for temperature behavior.
// It returns the temperature in Celsius or an error.
type TemperatureBehaviorFunc func(ctx context.Context) (float32, error)

// MoistureBehaviorFunc defines the function signature for moisture behavior.
// It returns the raw capacitive reading or an error.
type MoistureBehaviorFunc func(ctx context.Context) (uint16, error)

var _ SoilSensor = &MockSoilSensor{}

// MockSoilSensor is a SoilSensor that produces results from behavior functions
// without requiring any hardware.
type MockSoilSensor struct {
	tempBehavior     TemperatureBehaviorFunc
	moistureBehavior MoistureBehaviorFunc
}

// NewMockSoilSensor creates a new mock soil sensor with the given behavior functions.
// The temperature behavior is called by GetTemperature() and GetReading().
// The moisture behavior is called by GetMoisture() and GetReading().
//
// Example usage:
//
//	// Drying soil
//	moisture := uint16(1000)
//	sensor := NewMockSoilSensor(
//		func(ctx context.Context) (float32, error) { return 21.5, nil },
//		func(ctx context.Context) (uint16, error) { moisture -= 10; return moisture, nil },
//	)
func NewMockSoilSensor(tempBehavior TemperatureBehaviorFunc, moistureBehavior MoistureBehaviorFunc) *MockSoilSensor {
	return &MockSoilSensor{
		tempBehavior:     tempBehavior,
		moistureBehavior: moistureBehavior,
	}
}

func (m *MockSoilSensor) GetTemperature(ctx context.Context) (float32, error) {
	return m.tempBehavior(ctx)
}

func (m *MockSoilSensor) GetMoisture(ctx context.Context) (uint16, error) {
	return m.moistureBehavior(ctx)
}

// GetReading calls the temperature behavior first, then moisture, stopping at the first error.
func (m *MockSoilSensor) GetReading(ctx context.Context) (Reading, error) {
	temp, err := m.tempBehavior(ctx)
	if err != nil {
		return Reading{}, err
	}
	moisture, err := m.moistureBehavior(ctx)
	if err != nil {
		return Reading{}, err
	}
	return Reading{Temperature: temp, Moisture: moisture}, nil
}
