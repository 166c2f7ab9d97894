package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer("venue-booking", prometheus.NewRegistry())

	m.IncReservationEvent("created")
	m.IncReservationEvent("created")
	m.IncPaymentEvent("rejected")
	m.ObserveDBQuery("venue-booking", "update", time.Millisecond, errors.New("boom"))
	m.SetDBPoolStats("venue-booking", sql.DBStats{OpenConnections: 3})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reservationEvents.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentEvents.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("update")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dbOpenConns.WithLabelValues()))
}
