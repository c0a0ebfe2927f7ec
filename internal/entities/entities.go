package entities

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"
)

// OutboxMessage is a pending event stored in the same transaction as the
// state change that produced it.
type OutboxMessage struct {
	ID        int64
	EventID   string
	Topic     string
	Key       string
	Payload   []byte
	Attempts  int
	CreatedAt time.Time
}

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	return nil
}

func init() {
	gob.Register(Order{})
	gob.Register(Customer{})
	gob.Register(Item{})
	gob.Register(PaymentDetails{})
}
