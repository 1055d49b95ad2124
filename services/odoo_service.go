package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"regexp"
	"time"

	"github.com/warinth/barlink-backend/config"
)

// OdooConfig konfigurasi JSON-RPC ke POS upstream.
type OdooConfig struct {
	URL    string // https://<subdomain>.odoo.com/jsonrpc
	DB     string
	Login  string
	APIKey string
	TZ     string
}

// OdooClient memanggil Odoo JSON-RPC untuk data order POS.
type OdooClient struct {
	config     OdooConfig
	httpClient *http.Client
}

func NewOdooClientFromEnv() *OdooClient {
	return NewOdooClient(OdooConfig{
		URL:    config.Getenv("ODOO_URL", ""),
		DB:     config.Getenv("ODOO_DB", ""),
		Login:  config.Getenv("ODOO_LOGIN", ""),
		APIKey: config.Getenv("ODOO_API_KEY", ""),
		TZ:     config.Getenv("APP_TZ", "Asia/Bangkok"),
	})
}

func NewOdooClient(cfg OdooConfig) *OdooClient {
	return &OdooClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type jsonRPCRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  jsonRPCParams `json:"params"`
	ID      int64         `json:"id"`
}

type jsonRPCParams struct {
	Service string        `json:"service"`
	Method  string        `json:"method"`
	Args    []interface{} `json:"args"`
}

type jsonRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *jsonRPCError   `json:"error"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (oc *OdooClient) rpc(service, method string, args []interface{}, out interface{}) error {
	if oc.config.URL == "" || oc.config.DB == "" || oc.config.Login == "" || oc.config.APIKey == "" {
		return fmt.Errorf("odoo config incomplete")
	}

	body, err := json.Marshal(jsonRPCRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  jsonRPCParams{Service: service, Method: method, Args: args},
		ID:      time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}

	resp, err := oc.httpClient.Post(oc.config.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("odoo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("odoo HTTP %d: %s", resp.StatusCode, string(text))
	}

	var rpcResp jsonRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("odoo response decode: %w", err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("odoo RPC error: %s", rpcResp.Error.Message)
	}
	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return fmt.Errorf("odoo result decode: %w", err)
		}
	}
	return nil
}

// Login -> uid, wajib sebelum call object apapun.
func (oc *OdooClient) Login() (int, error) {
	var uid int
	err := oc.rpc("common", "login", []interface{}{oc.config.DB, oc.config.Login, oc.config.APIKey}, &uid)
	if err != nil {
		return 0, err
	}
	return uid, nil
}

// CompanyID membaca company dari pos.config untuk context multi-company.
func (oc *OdooClient) CompanyID(uid int) (int, error) {
	var rows []struct {
		ID        int           `json:"id"`
		CompanyID []interface{} `json:"company_id"` // many2one: [id, display_name]
	}
	err := oc.rpc("object", "execute_kw", []interface{}{
		oc.config.DB, uid, oc.config.APIKey,
		"pos.config", "search_read",
		[]interface{}{[]interface{}{}},
		map[string]interface{}{
			"fields": []string{"id", "name", "company_id"},
			"limit":  1,
		},
	}, &rows)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0].CompanyID) < 1 {
		return 0, fmt.Errorf("no pos.config found")
	}
	id, ok := rows[0].CompanyID[0].(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected company_id shape")
	}
	return int(id), nil
}

func (oc *OdooClient) companyContext(companyID int) map[string]interface{} {
	return map[string]interface{}{
		"allowed_company_ids": []int{companyID},
		"company_id":          companyID,
		"tz":                  oc.config.TZ,
	}
}

// UnpaidOrder adalah bentuk ternormalisasi yang dipakai dashboard.
type UnpaidOrder struct {
	OrderID      int     `json:"orderId"`
	TableLabel   string  `json:"tableLabel"`
	TableNo      *int    `json:"tableNo"`
	AmountTotal  float64 `json:"amountTotal"`
	AmountPaid   float64 `json:"amountPaid"`
	AmountDue    float64 `json:"amountDue"`
	State        string  `json:"state"`
	DateOrderUTC *string `json:"dateOrderUtc"`
}

// posOrderRow bentuk mentah dari pos.order search_read.
type posOrderRow struct {
	ID          int             `json:"id"`
	State       string          `json:"state"`
	TableID     json.RawMessage `json:"table_id"` // [id, display_name] atau false
	AmountTotal float64         `json:"amount_total"`
	AmountPaid  float64         `json:"amount_paid"`
	DateOrder   json.RawMessage `json:"date_order"` // string atau false
}

var trailingDigits = regexp.MustCompile(`(\d+)\s*$`)

// ParseTableNo memotong run digit terakhir dari display label meja Odoo
// ("mybar, 7" -> 7); nil kalau tidak ada angka.
func ParseTableNo(label string) *int {
	m := trailingDigits.FindStringSubmatch(label)
	if m == nil {
		return nil
	}
	var n int
	fmt.Sscanf(m[1], "%d", &n)
	return &n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// tableLabelOf membaca display name dari field many2one; "" kalau false/kosong.
func (r posOrderRow) tableLabelOf() (string, bool) {
	var pair []interface{}
	if err := json.Unmarshal(r.TableID, &pair); err != nil || len(pair) < 2 {
		return "", false
	}
	label, ok := pair[1].(string)
	return label, ok
}

func (r posOrderRow) dateOrderOf() *string {
	var s string
	if err := json.Unmarshal(r.DateOrder, &s); err != nil {
		return nil
	}
	return &s
}

func (r posOrderRow) normalize() UnpaidOrder {
	label, _ := r.tableLabelOf()
	return UnpaidOrder{
		OrderID:      r.ID,
		TableLabel:   label,
		TableNo:      ParseTableNo(label),
		AmountTotal:  r.AmountTotal,
		AmountPaid:   r.AmountPaid,
		AmountDue:    round2(r.AmountTotal - r.AmountPaid),
		State:        r.State,
		DateOrderUTC: r.dateOrderOf(),
	}
}

func (oc *OdooClient) searchOrders(domain []interface{}, limit int) ([]posOrderRow, error) {
	uid, err := oc.Login()
	if err != nil {
		return nil, err
	}
	companyID, err := oc.CompanyID(uid)
	if err != nil {
		return nil, err
	}

	var rows []posOrderRow
	err = oc.rpc("object", "execute_kw", []interface{}{
		oc.config.DB, uid, oc.config.APIKey,
		"pos.order", "search_read",
		[]interface{}{domain},
		map[string]interface{}{
			"fields":  []string{"id", "name", "state", "table_id", "amount_total", "amount_paid", "date_order"},
			"order":   "id desc",
			"limit":   limit,
			"context": oc.companyContext(companyID),
		},
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchUnpaidOrders mengambil order terbaru lalu menyaring di sisi kita:
// harus punya meja dan state bukan paid/done. Domain dibiarkan kosong karena
// beberapa versi Odoo rewel dengan domain kompleks.
func (oc *OdooClient) FetchUnpaidOrders(limit int) ([]UnpaidOrder, error) {
	rows, err := oc.searchOrders([]interface{}{}, limit)
	if err != nil {
		return nil, err
	}

	result := make([]UnpaidOrder, 0, len(rows))
	for _, r := range rows {
		if _, hasTable := r.tableLabelOf(); !hasTable {
			continue
		}
		if r.State == "paid" || r.State == "done" {
			continue
		}
		result = append(result, r.normalize())
	}
	return result, nil
}

// FetchOrderInfo mengambil satu order by id untuk alur contact lookup.
func (oc *OdooClient) FetchOrderInfo(orderID int) (*UnpaidOrder, error) {
	domain := []interface{}{[]interface{}{"id", "=", orderID}}
	rows, err := oc.searchOrders(domain, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	order := rows[0].normalize()
	return &order, nil
}
