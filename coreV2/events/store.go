package events

import (
	"encoding/binary"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/tendermint/go-amino"
	db "github.com/tendermint/tm-db"
)

// IEventsDB is an interface of Events
type IEventsDB interface {
	AddEvent(event Event)
	LoadEvents(height int64) (Events, error)
	CommitEvents(height int64) error
	DeleteEvents(height int64) error
	Rollback()
}

type eventsStore struct {
	cdc *amino.Codec
	db  db.DB

	pending Events
	lock    sync.Mutex
}

func RegisterAminoEvents(codec *amino.Codec) {
	codec.RegisterInterface((*Event)(nil), nil)
	codec.RegisterConcrete(&TransferEvent{}, TypeTransferEvent, nil)
	codec.RegisterConcrete(&ApprovalEvent{}, TypeApprovalEvent, nil)
	codec.RegisterConcrete(&TaxUpdateEvent{}, TypeTaxUpdateEvent, nil)
	codec.RegisterConcrete(&TradingEnabledEvent{}, TypeTradingEnabledEvent, nil)
}

// NewEventsStore creates new events store in given DB
func NewEventsStore(db db.DB) IEventsDB {
	codec := amino.NewCodec()
	RegisterAminoEvents(codec)

	return &eventsStore{
		cdc: codec,
		db:  db,
	}
}

func (store *eventsStore) AddEvent(event Event) {
	store.lock.Lock()
	defer store.lock.Unlock()

	store.pending = append(store.pending, event)
}

func (store *eventsStore) Rollback() {
	store.lock.Lock()
	defer store.lock.Unlock()

	store.pending = nil
}

// CommitEvents stores pending events under height. Nothing is written when
// there is nothing pending.
func (store *eventsStore) CommitEvents(height int64) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	if len(store.pending) == 0 {
		return nil
	}

	bytes, err := store.cdc.MarshalBinaryBare(store.pending)
	if err != nil {
		return errors.Wrap(err, "encode events")
	}

	if err := store.db.Set(heightKey(height), bytes); err != nil {
		return errors.Wrapf(err, "save events at %d", height)
	}

	store.pending = nil
	return nil
}

// DeleteEvents drops the events stored under height
func (store *eventsStore) DeleteEvents(height int64) error {
	if err := store.db.Delete(heightKey(height)); err != nil {
		return errors.Wrapf(err, "delete events at %d", height)
	}
	return nil
}

func (store *eventsStore) LoadEvents(height int64) (Events, error) {
	bytes, err := store.db.Get(heightKey(height))
	if err != nil {
		return nil, err
	}
	if len(bytes) == 0 {
		return Events{}, nil
	}

	var items Events
	if err := store.cdc.UnmarshalBinaryBare(bytes, &items); err != nil {
		return nil, errors.Wrapf(err, "decode events at %d", height)
	}

	return items, nil
}

func heightKey(height int64) []byte {
	var h = make([]byte, 8)
	binary.BigEndian.PutUint64(h, uint64(height))

	return h
}

// MarshalJSON renders events as {"type": ..., "value": {...}}
func (e Events) MarshalJSON() ([]byte, error) {
	type typed struct {
		Type  string `json:"type"`
		Value Event  `json:"value"`
	}

	items := make([]typed, 0, len(e))
	for _, event := range e {
		items = append(items, typed{Type: event.Type(), Value: event})
	}

	return json.Marshal(items)
}
