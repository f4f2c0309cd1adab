package code

import (
	"errors"
	"fmt"
	"strconv"
)

// Codes for transaction checks and delivers responses
const (
	// general
	OK                 uint32 = 0
	WrongNonce         uint32 = 101
	InvalidSignature   uint32 = 102
	DecodeError        uint32 = 106
	UnknownTxType      uint32 = 108
	InvalidAmount      uint32 = 111
	InvariantViolation uint32 = 120

	// ledger
	InsufficientBalance   uint32 = 107
	InsufficientAllowance uint32 = 201
	InvalidAddress        uint32 = 202

	// access control and trading gate
	Unauthorized          uint32 = 301
	TradingDisabled       uint32 = 302
	TradingAlreadyEnabled uint32 = 303

	// fee engine
	InvalidTaxRate uint32 = 401

	// treasury
	ExternalCallFailed uint32 = 501
)

// Error is a rejected operation. Info holds the JSON-encoded details of the failure.
type Error struct {
	Code uint32
	Log  string
	Info string
}

func (e *Error) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Log)
}

// Is reports whether err is a rejected operation with the given code
func Is(err error, c uint32) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == c
}

type decodeError struct {
	Code string `json:"code,omitempty"`
}

func NewDecodeError() *decodeError {
	return &decodeError{Code: strconv.Itoa(int(DecodeError))}
}

type wrongNonce struct {
	Code          string `json:"code,omitempty"`
	ExpectedNonce string `json:"expected_nonce,omitempty"`
	GotNonce      string `json:"got_nonce,omitempty"`
}

func NewWrongNonce(expectedNonce string, gotNonce string) *wrongNonce {
	return &wrongNonce{Code: strconv.Itoa(int(WrongNonce)), ExpectedNonce: expectedNonce, GotNonce: gotNonce}
}

type invalidSignature struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

func NewInvalidSignature(err string) *invalidSignature {
	return &invalidSignature{Code: strconv.Itoa(int(InvalidSignature)), Error: err}
}

type unknownTxType struct {
	Code   string `json:"code,omitempty"`
	TxType string `json:"tx_type,omitempty"`
}

func NewUnknownTxType(txType string) *unknownTxType {
	return &unknownTxType{Code: strconv.Itoa(int(UnknownTxType)), TxType: txType}
}

type invalidAmount struct {
	Code  string `json:"code,omitempty"`
	Value string `json:"value,omitempty"`
}

func NewInvalidAmount(value string) *invalidAmount {
	return &invalidAmount{Code: strconv.Itoa(int(InvalidAmount)), Value: value}
}

type invariantViolation struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

func NewInvariantViolation(err string) *invariantViolation {
	return &invariantViolation{Code: strconv.Itoa(int(InvariantViolation)), Error: err}
}

type insufficientBalance struct {
	Code        string `json:"code,omitempty"`
	Sender      string `json:"sender,omitempty"`
	NeededValue string `json:"needed_value,omitempty"`
	Balance     string `json:"balance,omitempty"`
	Coin        string `json:"coin,omitempty"`
}

func NewInsufficientBalance(sender string, neededValue string, balance string, coin string) *insufficientBalance {
	return &insufficientBalance{Code: strconv.Itoa(int(InsufficientBalance)), Sender: sender, NeededValue: neededValue, Balance: balance, Coin: coin}
}

type insufficientAllowance struct {
	Code        string `json:"code,omitempty"`
	Owner       string `json:"owner,omitempty"`
	Spender     string `json:"spender,omitempty"`
	NeededValue string `json:"needed_value,omitempty"`
	Allowance   string `json:"allowance,omitempty"`
}

func NewInsufficientAllowance(owner, spender, neededValue, allowance string) *insufficientAllowance {
	return &insufficientAllowance{Code: strconv.Itoa(int(InsufficientAllowance)), Owner: owner, Spender: spender, NeededValue: neededValue, Allowance: allowance}
}

type invalidAddress struct {
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Address string `json:"address,omitempty"`
}

func NewInvalidAddress(field string, address string) *invalidAddress {
	return &invalidAddress{Code: strconv.Itoa(int(InvalidAddress)), Field: field, Address: address}
}

type unauthorized struct {
	Code   string `json:"code,omitempty"`
	Sender string `json:"sender,omitempty"`
	Owner  string `json:"owner,omitempty"`
}

func NewUnauthorized(sender string, owner string) *unauthorized {
	return &unauthorized{Code: strconv.Itoa(int(Unauthorized)), Sender: sender, Owner: owner}
}

type tradingDisabled struct {
	Code string `json:"code,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

func NewTradingDisabled(from string, to string) *tradingDisabled {
	return &tradingDisabled{Code: strconv.Itoa(int(TradingDisabled)), From: from, To: to}
}

type tradingAlreadyEnabled struct {
	Code string `json:"code,omitempty"`
}

func NewTradingAlreadyEnabled() *tradingAlreadyEnabled {
	return &tradingAlreadyEnabled{Code: strconv.Itoa(int(TradingAlreadyEnabled))}
}

type invalidTaxRate struct {
	Code    string `json:"code,omitempty"`
	BuyTax  string `json:"buy_tax,omitempty"`
	SellTax string `json:"sell_tax,omitempty"`
	MaxTax  string `json:"max_tax,omitempty"`
}

func NewInvalidTaxRate(buyTax, sellTax, maxTax string) *invalidTaxRate {
	return &invalidTaxRate{Code: strconv.Itoa(int(InvalidTaxRate)), BuyTax: buyTax, SellTax: sellTax, MaxTax: maxTax}
}

type externalCallFailed struct {
	Code   string `json:"code,omitempty"`
	Ledger string `json:"ledger,omitempty"`
	Error  string `json:"error,omitempty"`
}

func NewExternalCallFailed(ledger string, err string) *externalCallFailed {
	return &externalCallFailed{Code: strconv.Itoa(int(ExternalCallFailed)), Ledger: ledger, Error: err}
}
