package events

import (
	"github.com/MinterTeam/taxtoken/coreV2/types"
)

// Event type names
const (
	TypeTransferEvent       = "taxtoken/TransferEvent"
	TypeApprovalEvent       = "taxtoken/ApprovalEvent"
	TypeTaxUpdateEvent      = "taxtoken/TaxUpdateEvent"
	TypeTradingEnabledEvent = "taxtoken/TradingEnabledEvent"
)

type Event interface {
	Type() string
}

type Events []Event

// TransferEvent is a movement of tokens. A fee is reported as its own
// transfer to the tax wallet, a burn as a transfer to the zero address.
type TransferEvent struct {
	From  types.Address `json:"from"`
	To    types.Address `json:"to"`
	Value string        `json:"value"`
}

func (e *TransferEvent) Type() string {
	return TypeTransferEvent
}

type ApprovalEvent struct {
	Owner   types.Address `json:"owner"`
	Spender types.Address `json:"spender"`
	Value   string        `json:"value"`
}

func (e *ApprovalEvent) Type() string {
	return TypeApprovalEvent
}

type TaxUpdateEvent struct {
	BuyTax  uint32 `json:"buy_tax"`
	SellTax uint32 `json:"sell_tax"`
}

func (e *TaxUpdateEvent) Type() string {
	return TypeTaxUpdateEvent
}

type TradingEnabledEvent struct {
	Owner types.Address `json:"owner"`
}

func (e *TradingEnabledEvent) Type() string {
	return TypeTradingEnabledEvent
}
