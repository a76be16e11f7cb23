package gateway

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/warp-contracts/minter/src/gateway/request"
	"github.com/warp-contracts/minter/src/gateway/response"
	"github.com/warp-contracts/minter/src/ledger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

func parseAddress(s string) (out common.Address, err error) {
	if !common.IsHexAddress(s) {
		err = fmt.Errorf("%w: %q is not an address", ledger.ErrInvalidInput, s)
		return
	}
	return common.HexToAddress(s), nil
}

func (self *Server) onMint(c *gin.Context) {
	var in = new(request.Mint)
	err := c.ShouldBindJSON(in)
	if err != nil {
		self.abortBadRequest(c, err).Debug("Failed to parse mint request")
		return
	}

	caller, err := parseAddress(in.Caller)
	if err != nil {
		self.abort(c, err).Debug("Bad caller")
		return
	}

	payment, err := ledger.ParseAmount(in.Payment)
	if err != nil {
		self.abort(c, err).Debug("Bad payment")
		return
	}

	ids, err := self.ledger.Mint(caller, in.Quantity, in.UriSuffixes, payment)
	if err != nil {
		self.abort(c, err).Info("Mint rejected")
		return
	}

	LOG(c).WithField("caller", caller.Hex()).WithField("ids", ids).Debug("Minted")
	c.JSON(http.StatusOK, &response.Ids{Ids: ids})
}

func (self *Server) onReserve(c *gin.Context) {
	var in = new(request.Reserve)
	err := c.ShouldBindJSON(in)
	if err != nil {
		self.abortBadRequest(c, err).Debug("Failed to parse reserve request")
		return
	}

	caller, err := parseAddress(in.Caller)
	if err != nil {
		self.abort(c, err).Debug("Bad caller")
		return
	}

	ids, err := self.ledger.Reserve(caller, in.Quantity, in.UriSuffixes)
	if err != nil {
		self.abort(c, err).Info("Reserve rejected")
		return
	}

	c.JSON(http.StatusOK, &response.Ids{Ids: ids})
}

func (self *Server) onWithdraw(c *gin.Context) {
	var in = new(request.Withdraw)
	err := c.ShouldBindJSON(in)
	if err != nil {
		self.abortBadRequest(c, err).Debug("Failed to parse withdraw request")
		return
	}

	caller, err := parseAddress(in.Caller)
	if err != nil {
		self.abort(c, err).Debug("Bad caller")
		return
	}

	amount, err := self.ledger.Withdraw(caller)
	if err != nil {
		self.abort(c, err).Info("Withdraw rejected")
		return
	}

	c.JSON(http.StatusOK, &response.Amount{Amount: amount.String()})
}

func (self *Server) onGetMinting(c *gin.Context) {
	c.JSON(http.StatusOK, &response.Minting{Active: self.ledger.IsMintingActive()})
}

func (self *Server) onSetMinting(c *gin.Context) {
	var in = new(request.SetMinting)
	err := c.ShouldBindJSON(in)
	if err != nil {
		self.abortBadRequest(c, err).Debug("Failed to parse minting request")
		return
	}

	caller, err := parseAddress(in.Caller)
	if err != nil {
		self.abort(c, err).Debug("Bad caller")
		return
	}

	err = self.ledger.SetMintingActive(caller, *in.Active)
	if err != nil {
		self.abort(c, err).Info("Minting switch rejected")
		return
	}

	c.JSON(http.StatusOK, &response.Minting{Active: *in.Active})
}

func (self *Server) onSetBaseURI(c *gin.Context) {
	var in = new(request.SetBaseURI)
	err := c.ShouldBindJSON(in)
	if err != nil {
		self.abortBadRequest(c, err).Debug("Failed to parse base uri request")
		return
	}

	caller, err := parseAddress(in.Caller)
	if err != nil {
		self.abort(c, err).Debug("Bad caller")
		return
	}

	err = self.ledger.SetBaseURI(caller, in.BaseURI)
	if err != nil {
		self.abort(c, err).Info("Base uri change rejected")
		return
	}

	c.JSON(http.StatusOK, &response.BaseURI{BaseURI: in.BaseURI})
}

func (self *Server) onGetSupply(c *gin.Context) {
	state := self.ledger.Snapshot()
	c.JSON(http.StatusOK, &response.Supply{
		TotalSupply:  state.TotalSupply,
		MaxSupply:    state.MaxSupply,
		MaxBatchSize: state.MaxBatchSize,
		FirstTokenId: state.FirstTokenId,
	})
}

func (self *Server) onGetLedger(c *gin.Context) {
	c.JSON(http.StatusOK, response.StateToResponse(self.ledger.Snapshot()))
}

func (self *Server) onGetToken(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		self.abort(c, fmt.Errorf("%w: %q is not a token id", ledger.ErrInvalidInput, c.Param("id"))).Debug("Bad token id")
		return
	}

	token, uri, err := self.ledger.GetTokenWithURI(id)
	if err != nil {
		self.abort(c, err).Debug("Token not found")
		return
	}

	c.JSON(http.StatusOK, response.TokenToResponse(token, uri))
}

func (self *Server) onGetBalance(c *gin.Context) {
	address, err := parseAddress(c.Param("address"))
	if err != nil {
		self.abort(c, err).Debug("Bad address")
		return
	}

	c.JSON(http.StatusOK, &response.Balance{
		Address: address.Hex(),
		Balance: self.ledger.BalanceOf(address),
	})
}
