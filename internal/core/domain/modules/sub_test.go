package modules

import (
	"context"
	"cybot/internal/core/domain"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	records map[string]domain.SubscriptionRecord
	loadErr error
	saveErr error
	Saves   int
}

func (m *MockStore) Load() (map[string]domain.SubscriptionRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}

	records := make(map[string]domain.SubscriptionRecord, len(m.records))
	for k, v := range m.records {
		records[k] = v
	}

	return records, nil
}

func (m *MockStore) Save(records map[string]domain.SubscriptionRecord) error {
	m.Saves++
	if m.saveErr != nil {
		return m.saveErr
	}

	m.records = make(map[string]domain.SubscriptionRecord, len(records))
	for k, v := range records {
		m.records[k] = v
	}

	return nil
}

func aliceMessage() *domain.Message {
	return &domain.Message{
		ID:             1,
		ChatID:         100,
		SenderID:       "u1",
		SenderName:     "Alice",
		DeliveryTarget: "100",
	}
}

func TestSubscribeOn(t *testing.T) {
	ms := &MockStore{}
	sub := NewSubscriptionModule(ms, "sub")

	response, err := sub.Handle(context.Background(), []string{"on", "Beijing"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "Beijing")
	assert.Contains(t, response, "08:00")
	assert.Equal(t, 1, ms.Saves)

	record := ms.records["u1"]
	assert.Equal(t, "Beijing", record.Location)
	assert.True(t, record.Enabled)
	assert.Equal(t, "Alice", record.UserName)
	assert.Equal(t, "100", record.DeliveryTarget)
}

func TestSubscribeOnMissingLocation(t *testing.T) {
	ms := &MockStore{}
	sub := NewSubscriptionModule(ms, "sub")

	response, err := sub.Handle(context.Background(), []string{"on"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "please name a location")
	assert.Equal(t, 0, ms.Saves)
}

func TestSubscribeOnTakesSecondTokenOnly(t *testing.T) {
	ms := &MockStore{}
	sub := NewSubscriptionModule(ms, "sub")

	_, err := sub.Handle(context.Background(), []string{"on", "New", "York"}, aliceMessage())
	require.NoError(t, err)
	assert.Equal(t, "New", ms.records["u1"].Location)
}

func TestSubscribeOnOverwrites(t *testing.T) {
	ms := &MockStore{}
	sub := NewSubscriptionModule(ms, "sub")

	_, err := sub.Handle(context.Background(), []string{"on", "Beijing"}, aliceMessage())
	require.NoError(t, err)
	_, err = sub.Handle(context.Background(), []string{"on", "Shanghai"}, aliceMessage())
	require.NoError(t, err)

	require.Len(t, ms.records, 1)
	assert.Equal(t, "Shanghai", ms.records["u1"].Location)
}

func TestUnsubscribeKeepsRecord(t *testing.T) {
	ms := &MockStore{}
	sub := NewSubscriptionModule(ms, "sub")

	_, err := sub.Handle(context.Background(), []string{"on", "Beijing"}, aliceMessage())
	require.NoError(t, err)

	response, err := sub.Handle(context.Background(), []string{"off"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "unsubscribed")

	record, ok := ms.records["u1"]
	require.True(t, ok)
	assert.False(t, record.Enabled)
	assert.Equal(t, "Beijing", record.Location)
}

func TestUnsubscribeIdempotent(t *testing.T) {
	ms := &MockStore{}
	sub := NewSubscriptionModule(ms, "sub")

	_, err := sub.Handle(context.Background(), []string{"on", "Beijing"}, aliceMessage())
	require.NoError(t, err)

	first, err := sub.Handle(context.Background(), []string{"off"}, aliceMessage())
	require.NoError(t, err)
	second, err := sub.Handle(context.Background(), []string{"off"}, aliceMessage())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.False(t, ms.records["u1"].Enabled)
}

func TestUnsubscribeWithoutSubscription(t *testing.T) {
	ms := &MockStore{}
	sub := NewSubscriptionModule(ms, "sub")

	response, err := sub.Handle(context.Background(), []string{"off"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "not subscribed")
}

func TestStatusRoundTrip(t *testing.T) {
	ms := &MockStore{}
	sub := NewSubscriptionModule(ms, "sub")

	response, err := sub.Handle(context.Background(), []string{"status"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "not subscribed")

	_, err = sub.Handle(context.Background(), []string{"on", "Beijing"}, aliceMessage())
	require.NoError(t, err)

	response, err = sub.Handle(context.Background(), []string{"status"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "subscribed (Beijing)")

	_, err = sub.Handle(context.Background(), []string{"off"}, aliceMessage())
	require.NoError(t, err)

	response, err = sub.Handle(context.Background(), []string{"status"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "not subscribed")
}

func TestStatusSurvivesReload(t *testing.T) {
	ms := &MockStore{}
	sub := NewSubscriptionModule(ms, "sub")

	_, err := sub.Handle(context.Background(), []string{"on", "Beijing"}, aliceMessage())
	require.NoError(t, err)

	// a fresh module over the same store sees the same record
	reloaded := NewSubscriptionModule(ms, "sub")
	response, err := reloaded.Handle(context.Background(), []string{"status"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "subscribed (Beijing)")
}

func TestVerbsAreCaseInsensitive(t *testing.T) {
	ms := &MockStore{}
	sub := NewSubscriptionModule(ms, "sub")

	response, err := sub.Handle(context.Background(), []string{"ON", "Beijing"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "Beijing")

	response, err = sub.Handle(context.Background(), []string{"STATUS"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "subscribed (Beijing)")
}

func TestUnknownVerbReturnsHelp(t *testing.T) {
	ms := &MockStore{}
	sub := NewSubscriptionModule(ms, "sub")

	response, err := sub.Handle(context.Background(), []string{"frobnicate"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, sub.Help())

	response, err = sub.Handle(context.Background(), nil, aliceMessage())
	require.NoError(t, err)
	assert.Equal(t, sub.Help(), response)
}

func TestSaveFailureSurfaced(t *testing.T) {
	ms := &MockStore{saveErr: errors.New("disk full")}
	sub := NewSubscriptionModule(ms, "sub")

	response, err := sub.Handle(context.Background(), []string{"on", "Beijing"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "saving failed")

	// in-memory state stands despite the failed save
	response, err = sub.Handle(context.Background(), []string{"status"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "subscribed (Beijing)")
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	ms := &MockStore{loadErr: errors.New("corrupt file")}
	sub := NewSubscriptionModule(ms, "sub")

	response, err := sub.Handle(context.Background(), []string{"status"}, aliceMessage())
	require.NoError(t, err)
	assert.Contains(t, response, "not subscribed")
}

func TestSnapshotDeterministicOrder(t *testing.T) {
	ms := &MockStore{records: map[string]domain.SubscriptionRecord{
		"u3": {Location: "Osaka", Enabled: true, DeliveryTarget: "3"},
		"u1": {Location: "Beijing", Enabled: true, DeliveryTarget: "1"},
		"u2": {Location: "Berlin", Enabled: false, DeliveryTarget: "2"},
		"u4": {Location: "Lima", Enabled: true},
	}}
	sub := NewSubscriptionModule(ms, "sub")

	snapshot := sub.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "u1", snapshot[0].SubscriberID)
	assert.Equal(t, "u3", snapshot[1].SubscriberID)
}
