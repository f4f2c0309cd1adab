package api

import (
	"net/http"
	"strconv"

	"github.com/MinterTeam/taxtoken/coreV2/code"
	"github.com/MinterTeam/taxtoken/coreV2/events"
	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/gin-gonic/gin"
)

type BalanceResult struct {
	Address       types.Address `json:"address"`
	Balance       string        `json:"balance"`
	NativeBalance string        `json:"native_balance"`
	Nonce         uint64        `json:"nonce"`
}

type AllowanceResult struct {
	Owner   types.Address `json:"owner"`
	Spender types.Address `json:"spender"`
	Value   string        `json:"value"`
}

type FlagResult struct {
	Address types.Address `json:"address"`
	Value   bool          `json:"value"`
}

func (s *Service) status(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Code: code.OK, Result: s.token.Status()})
}

func (s *Service) balance(c *gin.Context) {
	address, ok := addressParam(c, "address")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, Response{Code: code.OK, Result: BalanceResult{
		Address:       address,
		Balance:       s.token.BalanceOf(address).String(),
		NativeBalance: s.token.NativeBalanceOf(address).String(),
		Nonce:         s.token.Nonce(address),
	}})
}

func (s *Service) allowance(c *gin.Context) {
	owner, ok := addressParam(c, "owner")
	if !ok {
		return
	}
	spender, ok := addressParam(c, "spender")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, Response{Code: code.OK, Result: AllowanceResult{
		Owner:   owner,
		Spender: spender,
		Value:   s.token.Allowance(owner, spender).String(),
	}})
}

func (s *Service) excluded(c *gin.Context) {
	address, ok := addressParam(c, "address")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, Response{Code: code.OK, Result: FlagResult{Address: address, Value: s.token.IsExcludedFromFee(address)}})
}

func (s *Service) pair(c *gin.Context) {
	address, ok := addressParam(c, "address")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, Response{Code: code.OK, Result: FlagResult{Address: address, Value: s.token.IsAMMPair(address)}})
}

func addressParam(c *gin.Context, name string) (types.Address, bool) {
	param := c.Param(name)
	if !types.IsHexAddress(param) {
		c.JSON(http.StatusBadRequest, Response{
			Code: code.InvalidAddress,
			Log:  "Invalid " + name + " address " + param,
		})
		return types.Address{}, false
	}

	return types.HexToAddress(param), true
}

type EventsResult struct {
	Height int64         `json:"height"`
	Events events.Events `json:"events"`
}

func (s *Service) eventsAt(c *gin.Context) {
	height, err := strconv.ParseInt(c.Param("height"), 10, 64)
	if err != nil || height < 1 {
		c.JSON(http.StatusBadRequest, Response{Code: code.DecodeError, Log: "Invalid height " + c.Param("height")})
		return
	}

	items, err := s.token.Events(height)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{Code: code.InvariantViolation, Log: err.Error()})
		return
	}

	c.JSON(http.StatusOK, Response{Code: code.OK, Result: EventsResult{Height: height, Events: items}})
}
