package environment

import (
	"context"
	"fmt"
	"testing"
)

func TestMockSoilSensor_StaticValues(t *testing.T) {
	sensor := NewMockSoilSensor(
		func(ctx context.Context) (float32, error) { return 22.5, nil },
		func(ctx context.Context) (uint16, error) { return 612, nil },
	)

	ctx := context.Background()

	temp, err := sensor.GetTemperature(ctx)
	if err != nil {
		t.Fatalf("GetTemperature: unexpected error: %v", err)
	}
	if temp != 22.5 {
		t.Errorf("expected temperature 22.5, got %f", temp)
	}

	moisture, err := sensor.GetMoisture(ctx)
	if err != nil {
		t.Fatalf("GetMoisture: unexpected error: %v", err)
	}
	if moisture != 612 {
		t.Errorf("expected moisture 612, got %d", moisture)
	}

	reading, err := sensor.GetReading(ctx)
	if err != nil {
		t.Fatalf("GetReading: unexpected error: %v", err)
	}
	if reading.Temperature != 22.5 || reading.Moisture != 612 {
		t.Errorf("expected 22.5/612, got %f/%d", reading.Temperature, reading.Moisture)
	}
}

func TestMockSoilSensor_IndependentBehaviors(t *testing.T) {
	tempCalls := 0
	moistureCalls := 0

	sensor := NewMockSoilSensor(
		func(ctx context.Context) (float32, error) {
			tempCalls++
			return 20.0, nil
		},
		func(ctx context.Context) (uint16, error) {
			moistureCalls++
			return 500, nil
		},
	)

	ctx := context.Background()

	_, _ = sensor.GetTemperature(ctx)
	if tempCalls != 1 || moistureCalls != 0 {
		t.Errorf("GetTemperature: unexpected call counts: temp=%d, moisture=%d", tempCalls, moistureCalls)
	}

	_, _ = sensor.GetMoisture(ctx)
	if tempCalls != 1 || moistureCalls != 1 {
		t.Errorf("GetMoisture: unexpected call counts: temp=%d, moisture=%d", tempCalls, moistureCalls)
	}

	_, _ = sensor.GetReading(ctx)
	if tempCalls != 2 || moistureCalls != 2 {
		t.Errorf("GetReading: unexpected call counts: temp=%d, moisture=%d (expected 2, 2)", tempCalls, moistureCalls)
	}
}

func TestMockSoilSensor_ErrorHandling(t *testing.T) {
	sensor := NewMockSoilSensor(
		func(ctx context.Context) (float32, error) {
			return 0, fmt.Errorf("temperature sensor error")
		},
		func(ctx context.Context) (uint16, error) {
			return 0, ErrSensorReadFailure
		},
	)

	ctx := context.Background()

	_, err := sensor.GetTemperature(ctx)
	if err == nil || err.Error() != "temperature sensor error" {
		t.Errorf("GetTemperature: expected specific error, got %v", err)
	}

	_, err = sensor.GetMoisture(ctx)
	if err != ErrSensorReadFailure {
		t.Errorf("GetMoisture: expected read failure, got %v", err)
	}

	_, err = sensor.GetReading(ctx)
	if err == nil || err.Error() != "temperature sensor error" {
		t.Errorf("GetReading: expected temperature sensor error, got %v", err)
	}
}

func TestMockSoilSensor_DryingSimulation(t *testing.T) {
	moisture := uint16(1000)

	sensor := NewMockSoilSensor(
		func(ctx context.Context) (float32, error) { return 21.0, nil },
		func(ctx context.Context) (uint16, error) {
			moisture -= 100
			return moisture, nil
		},
	)

	ctx := context.Background()
	for _, expected := range []uint16{900, 800, 700} {
		reading, err := sensor.GetReading(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reading.Moisture != expected {
			t.Errorf("expected moisture %d, got %d", expected, reading.Moisture)
		}
	}
}
