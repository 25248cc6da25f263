package collector

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	const (
		activeWin  = 120 * time.Second
		settledWin = 600 * time.Second
	)

	tests := []struct {
		age  time.Duration
		want Class
	}{
		{0, ClassActive},
		{30 * time.Second, ClassActive},
		{119 * time.Second, ClassActive},
		{120 * time.Second, ClassSettling},
		{300 * time.Second, ClassSettling},
		{599 * time.Second, ClassSettling},
		{600 * time.Second, ClassHistorical},
		{700 * time.Second, ClassHistorical},
		{24 * time.Hour, ClassHistorical},
	}
	for _, tt := range tests {
		if got := Classify(tt.age, activeWin, settledWin); got != tt.want {
			t.Errorf("Classify(%s) = %s, want %s", tt.age, got, tt.want)
		}
	}
}

func TestClassString(t *testing.T) {
	if ClassActive.String() != "active" || ClassSettling.String() != "settling" || ClassHistorical.String() != "historical" {
		t.Error("unexpected class names")
	}
}
