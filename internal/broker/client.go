package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oxydek/fin-stat/internal/apperr"
	"github.com/shopspring/decimal"
)

const (
	getAccountsPath  = "/tinkoff.public.invest.api.contract.v1.UsersService/GetAccounts"
	getPositionsPath = "/tinkoff.public.invest.api.contract.v1.OperationsService/GetPositions"
	getPortfolioPath = "/tinkoff.public.invest.api.contract.v1.OperationsService/GetPortfolio"
)

// MoneyValue is the brokerage wire format for money: integer units plus
// nanoseconds-style fractional part.
type MoneyValue struct {
	Currency string `json:"currency"`
	Units    int64  `json:"units,string"`
	Nano     int64  `json:"nano"`
}

// Decimal converts units + nano/1e9 to an exact decimal value.
func (m MoneyValue) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.Units).
		Add(decimal.New(m.Nano, -9))
}

type BrokerAccount struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

type Positions struct {
	Money []MoneyValue `json:"money"`
}

type Portfolio struct {
	TotalAmountShares     MoneyValue `json:"totalAmountShares"`
	TotalAmountBonds      MoneyValue `json:"totalAmountBonds"`
	TotalAmountEtf        MoneyValue `json:"totalAmountEtf"`
	TotalAmountCurrencies MoneyValue `json:"totalAmountCurrencies"`
	TotalAmountPortfolio  MoneyValue `json:"totalAmountPortfolio"`
}

// Client speaks the T-Invest public REST API. The token is supplied per call
// because it lives in the Settings record and can change at runtime.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) GetAccounts(ctx context.Context, token string) ([]BrokerAccount, error) {
	var out struct {
		Accounts []BrokerAccount `json:"accounts"`
	}
	if err := c.post(ctx, token, getAccountsPath, map[string]any{}, &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

func (c *Client) GetPositions(ctx context.Context, token, accountID string) (*Positions, error) {
	var out Positions
	if err := c.post(ctx, token, getPositionsPath, map[string]any{"accountId": accountID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPortfolio(ctx context.Context, token, accountID string) (*Portfolio, error) {
	var out Portfolio
	if err := c.post(ctx, token, getPortfolioPath, map[string]any{"accountId": accountID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, token, path string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.External("brokerage API unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperr.External("brokerage API error",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.External("brokerage API returned malformed response", err)
	}
	return nil
}
