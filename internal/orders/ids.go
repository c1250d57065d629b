package orders

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewOrderID builds a globally unique id that sorts chronologically:
// ORD_<compact UTC timestamp>_<6 random hex>.
func NewOrderID(t time.Time) string {
	ts := t.UTC().Format("20060102T150405Z")
	u := uuid.New()
	return fmt.Sprintf("ORD_%s_%x", ts, u[:3])
}
