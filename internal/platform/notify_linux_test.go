//go:build linux

package platform

import (
	"testing"
	"time"
)

func TestHintsUrgency(t *testing.T) {
	if got := hints(Options{})["urgency"].Value(); got != urgencyNormal {
		t.Errorf("normal urgency = %v", got)
	}
	if got := hints(Options{Urgent: true})["urgency"].Value(); got != urgencyCritical {
		t.Errorf("urgent urgency = %v", got)
	}
}

func TestOptionsTimeout(t *testing.T) {
	if got := (Options{}).timeout(); got != DefaultTimeout {
		t.Errorf("default timeout = %v", got)
	}
	if got := (Options{Timeout: time.Second}).timeout(); got != time.Second {
		t.Errorf("timeout = %v", got)
	}
}
