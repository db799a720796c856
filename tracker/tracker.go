// Package tracker owns the live pizza order collection and the operations
// that move orders through the kitchen pipeline.
package tracker

import (
	"fmt"
	"sync"
	"time"

	"pizza-tracker/models"
	"pizza-tracker/statemachine"
)

// IDPolicy selects how new order ids are assigned
type IDPolicy string

const (
	// IDPolicyLength assigns len(orders)+1, so ids can repeat after a cancel
	IDPolicyLength IDPolicy = "length"
	// IDPolicySequence assigns a counter that never goes backwards
	IDPolicySequence IDPolicy = "sequence"
)

// ParseIDPolicy maps a config value to a policy. Empty means length.
func ParseIDPolicy(s string) (IDPolicy, error) {
	switch IDPolicy(s) {
	case "", IDPolicyLength:
		return IDPolicyLength, nil
	case IDPolicySequence:
		return IDPolicySequence, nil
	}
	return "", fmt.Errorf("unknown order id policy %q (want %q or %q)", s, IDPolicyLength, IDPolicySequence)
}

type EventType string

const (
	EventPlaced    EventType = "order_placed"
	EventAdvanced  EventType = "order_advanced"
	EventCancelled EventType = "order_cancelled"
	EventTicked    EventType = "orders_ticked"
)

// Event describes one mutation of the collection. Order is nil for ticks.
type Event struct {
	Type      EventType
	Order     *models.Order
	FromStage models.Stage
	Orders    []models.Order
	At        time.Time
}

// Listener receives events after a mutation completes. Event.Orders already
// holds the collection; listeners must not call back into the tracker.
type Listener func(Event)

// Tracker is the single owner of the order collection.
// Every operation runs to completion under one lock.
type Tracker struct {
	mu     sync.Mutex
	orders []models.Order
	form   models.OrderForm
	policy IDPolicy
	lastID int

	// notifyMu keeps listener delivery in mutation order
	notifyMu  sync.Mutex
	lmu       sync.RWMutex
	listeners []Listener

	now func() time.Time
}

func New(policy IDPolicy) *Tracker {
	if policy == "" {
		policy = IDPolicyLength
	}
	return &Tracker{
		form:   models.DefaultForm(),
		policy: policy,
		now:    time.Now,
	}
}

// Subscribe registers a listener for every future mutation
func (t *Tracker) Subscribe(l Listener) {
	t.lmu.Lock()
	defer t.lmu.Unlock()
	t.listeners = append(t.listeners, l)
}

// Place appends a new order built from form
func (t *Tracker) Place(form models.OrderForm) models.Order {
	t.mu.Lock()
	order := models.Order{
		ID:        t.nextID(),
		Stage:     models.StagePlaced,
		TimeSpent: 0,
		Type:      form.Type,
		Size:      form.Size,
		Base:      form.Base,
	}
	t.orders = append(t.orders, order)
	t.unlockAndNotify(Event{Type: EventPlaced, Order: &order})
	return order
}

func (t *Tracker) nextID() int {
	if t.policy == IDPolicySequence {
		t.lastID++
		return t.lastID
	}
	return len(t.orders) + 1
}

// AdvanceStage moves the order one step forward. An order already at Picked
// is left as is. found is false when no order has that id.
func (t *Tracker) AdvanceStage(id int) (order models.Order, found bool) {
	t.mu.Lock()
	i := t.indexOf(id)
	if i < 0 {
		t.mu.Unlock()
		return models.Order{}, false
	}
	from := t.orders[i].Stage
	t.orders[i].Stage = statemachine.Next(from)
	order = t.orders[i]
	if order.Stage == from {
		t.mu.Unlock()
		return order, true
	}
	t.unlockAndNotify(Event{Type: EventAdvanced, Order: &order, FromStage: from})
	return order, true
}

// Cancel removes the order with that id, whatever its stage
func (t *Tracker) Cancel(id int) (order models.Order, found bool) {
	t.mu.Lock()
	i := t.indexOf(id)
	if i < 0 {
		t.mu.Unlock()
		return models.Order{}, false
	}
	order = t.orders[i]
	t.orders = append(t.orders[:i:i], t.orders[i+1:]...)
	t.unlockAndNotify(Event{Type: EventCancelled, Order: &order, FromStage: order.Stage})
	return order, true
}

// Tick adds one minute to every order currently tracked
func (t *Tracker) Tick() {
	t.mu.Lock()
	for i := range t.orders {
		t.orders[i].TimeSpent++
	}
	t.unlockAndNotify(Event{Type: EventTicked})
}

// Orders returns a snapshot of the collection in placement order
func (t *Tracker) Orders() []models.Order {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

func (t *Tracker) Order(id int) (models.Order, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.indexOf(id); i >= 0 {
		return t.orders[i], true
	}
	return models.Order{}, false
}

// Form returns the pending order form
func (t *Tracker) Form() models.OrderForm {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.form
}

func (t *Tracker) SetForm(f models.OrderForm) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.form = f
}

// Summary counts tracked orders per stage
func (t *Tracker) Summary() map[models.Stage]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	summary := make(map[models.Stage]int, 4)
	for _, o := range t.orders {
		summary[o.Stage]++
	}
	return summary
}

func (t *Tracker) indexOf(id int) int {
	for i := range t.orders {
		if t.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) snapshot() []models.Order {
	out := make([]models.Order, len(t.orders))
	copy(out, t.orders)
	return out
}

// unlockAndNotify must be called with t.mu held. Listeners run after the lock
// is released, one event at a time.
func (t *Tracker) unlockAndNotify(e Event) {
	e.Orders = t.snapshot()
	e.At = t.now()
	t.notifyMu.Lock()
	t.mu.Unlock()
	defer t.notifyMu.Unlock()

	t.lmu.RLock()
	listeners := t.listeners
	t.lmu.RUnlock()
	for _, l := range listeners {
		l(e)
	}
}
