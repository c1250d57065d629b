package orders

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocymate/core/internal/cart"
)

func testOrder(id string) Order {
	return Order{
		OrderID:       id,
		CustomerEmail: "alice@example.com",
		Items: []cart.Line{
			{ProductID: "g2", Name: "Basmati Rice", Price: 300, Quantity: 2},
			{ProductID: "g3", Name: "Pure Ghee", Price: 600, Quantity: 1},
		},
		Subtotal:        1200,
		Total:           1200,
		Status:          StatusReceived,
		Timestamp:       time.Now().UTC(),
		DeliveryAddress: "12 Park Street",
	}
}

func TestNewOrderID(t *testing.T) {
	at := time.Date(2025, 3, 9, 14, 30, 5, 0, time.UTC)
	id := NewOrderID(at)
	assert.True(t, strings.HasPrefix(id, "ORD_20250309T143005Z_"), id)
	assert.Len(t, id, len("ORD_20250309T143005Z_")+6)

	// chronological prefix sorts, random suffix disambiguates
	later := NewOrderID(at.Add(time.Second))
	assert.Less(t, id[:len("ORD_20250309T143005Z")], later[:len("ORD_20250309T143006Z")])
	assert.NotEqual(t, NewOrderID(at), NewOrderID(at))
}

func TestStatusSequence(t *testing.T) {
	want := []Status{StatusReceived, StatusConfirmed, StatusBeingPrepared, StatusOutForDelivery, StatusDelivered}
	s := StatusReceived
	for i := 1; i < len(want); i++ {
		nxt, ok := next(s)
		require.True(t, ok)
		assert.Equal(t, want[i], nxt)
		s = nxt
	}
	_, ok := next(StatusDelivered)
	assert.False(t, ok)
	_, ok = next(StatusPendingConfirmation)
	assert.False(t, ok, "pending orders are outside the lifecycle")
}

func TestPutPersistsOrderAndHistory(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put(testOrder("ORD_A")))

	// orders.json has the record
	b, err := os.ReadFile(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)
	var onDisk map[string]Order
	require.NoError(t, json.Unmarshal(b, &onDisk))
	require.Contains(t, onDisk, "ORD_A")
	assert.Equal(t, StatusReceived, onDisk["ORD_A"].Status)

	// history.json has exactly one row for it
	entries, err := s.History()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ORD_A", entries[0].OrderID)
	assert.Equal(t, 1200, entries[0].Total)
}

func TestHistoryAppendIsIdempotent(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	o := testOrder("ORD_A")
	require.NoError(t, s.Put(o))
	// replaying the write must not duplicate the history row
	require.NoError(t, s.Put(o))
	_, err = s.Advance("ORD_A")
	require.NoError(t, err)

	entries, err := s.History()
	require.NoError(t, err)
	count := 0
	for _, e := range entries {
		if e.OrderID == "ORD_A" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAdvance_FullLifecycle(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Put(testOrder("ORD_A")))

	want := []Status{StatusConfirmed, StatusBeingPrepared, StatusOutForDelivery, StatusDelivered}
	for i, expect := range want {
		o, err := s.Advance("ORD_A")
		require.NoError(t, err)
		assert.Equal(t, expect, o.Status)
		assert.Len(t, o.StatusHistory, i+1)
		assert.False(t, o.LastUpdated.IsZero())
	}

	// terminal: 5th advance fails, nothing changes
	_, err = s.Advance("ORD_A")
	assert.ErrorIs(t, err, ErrAlreadyDelivered)

	o, ok := s.Get("ORD_A")
	require.True(t, ok)
	assert.Equal(t, StatusDelivered, o.Status)
	require.Len(t, o.StatusHistory, 4)
	assert.Equal(t,
		[]Status{StatusReceived, StatusConfirmed, StatusBeingPrepared, StatusOutForDelivery},
		[]Status{o.StatusHistory[0].Status, o.StatusHistory[1].Status, o.StatusHistory[2].Status, o.StatusHistory[3].Status})
}

func TestAdvance_UnknownOrder(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	_, err = s.Advance("ORD_NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestByCustomerAndLastFor(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	older := testOrder("ORD_1")
	older.Timestamp = time.Now().UTC().Add(-time.Hour)
	newer := testOrder("ORD_2")
	other := testOrder("ORD_3")
	other.CustomerEmail = "bob@example.com"

	require.NoError(t, s.Put(older))
	require.NoError(t, s.Put(newer))
	require.NoError(t, s.Put(other))

	mine := s.ByCustomer("Alice@Example.com")
	require.Len(t, mine, 2)
	assert.Equal(t, "ORD_2", mine[0].OrderID, "newest first")

	last, ok := s.LastFor("alice@example.com")
	require.True(t, ok)
	assert.Equal(t, "ORD_2", last.OrderID)

	_, ok = s.LastFor("nobody@example.com")
	assert.False(t, ok)
}

func TestOpen_MissingAndCorruptFilesHealToEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	assert.Empty(t, s.ByCustomer("alice@example.com"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.json"), []byte("garbage"), 0o644))
	s, err = Open(dir)
	require.NoError(t, err)
	_, ok := s.Get("anything")
	assert.False(t, ok)
}

func TestPersistenceAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(testOrder("ORD_A")))
	_, err = s.Advance("ORD_A")
	require.NoError(t, err)

	reopened, err := Open(dir)
	require.NoError(t, err)
	o, ok := reopened.Get("ORD_A")
	require.True(t, ok)
	assert.Equal(t, StatusConfirmed, o.Status)
	assert.Len(t, o.StatusHistory, 1)
}
