// Package sui is a JSON-RPC implementation of the chain client.
//
// It speaks the fullnode's read API and normalizes the response envelopes,
// which differ between node versions: transaction payloads may carry the
// block data under transaction.data or flattened at the top level, and the
// command list may be named "transactions" or "commands". All of that is
// folded into the chain package's types here so the layers above only deal
// with one shape.
package sui

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc/v3"

	"github.com/fanbase-labs/pythia/internal/chain"
	"github.com/fanbase-labs/pythia/internal/decode"
)

var log = logrus.WithField("layer", "chain").WithField("package", "sui")

var showAll = map[string]bool{"showContent": true, "showType": true}

// Client is a chain.Client backed by a fullnode JSON-RPC endpoint.
type Client struct {
	rpc jsonrpc.RPCClient
	url string
}

// New creates a client for the given fullnode url.
func New(url string, timeout time.Duration) *Client {
	return &Client{
		rpc: jsonrpc.NewClientWithOpts(url, &jsonrpc.RPCClientOpts{
			HTTPClient: &http.Client{Timeout: timeout},
		}),
		url: url,
	}
}

// Ping checks the endpoint by asking for the chain identifier.
func (c *Client) Ping(ctx context.Context) (interface{}, error) {
	var id string
	if err := c.call(ctx, &id, "sui_getChainIdentifier"); err != nil {
		return nil, err
	}

	return map[string]string{"chain": id}, nil
}

// Name ...
func (c *Client) Name() string {
	return "sui"
}

func (c *Client) call(ctx context.Context, out interface{}, method string, params ...interface{}) error {
	resp, err := c.rpc.Call(ctx, method, params)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}

	if resp.Error != nil {
		return fmt.Errorf("%s failed: %s", method, resp.Error.Message)
	}

	if out == nil {
		return nil
	}

	if err := resp.GetObject(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	return nil
}

type objectResponse struct {
	Data  *objectData            `json:"data"`
	Error map[string]interface{} `json:"error"`
}

type objectData struct {
	ObjectID string         `json:"objectId"`
	Type     string         `json:"type"`
	Content  *objectContent `json:"content"`
}

type objectContent struct {
	DataType string                 `json:"dataType"`
	Type     string                 `json:"type"`
	Fields   map[string]interface{} `json:"fields"`
}

func (d *objectData) toObject() *chain.Object {
	if d == nil || d.Content == nil {
		return nil
	}

	typ := d.Type
	if typ == "" {
		typ = d.Content.Type
	}

	return &chain.Object{
		ID:     d.ObjectID,
		Type:   typ,
		Fields: d.Content.Fields,
	}
}

func (c *Client) GetObject(ctx context.Context, id string) (*chain.Object, error) {
	var res objectResponse
	if err := c.call(ctx, &res, "sui_getObject", id, showAll); err != nil {
		return nil, err
	}

	obj := res.Data.toObject()
	if obj == nil {
		return nil, fmt.Errorf("%w: %s", chain.ErrNotFound, id)
	}

	return obj, nil
}

func (c *Client) MultiGetObjects(ctx context.Context, ids []string) ([]*chain.Object, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var res []objectResponse
	if err := c.call(ctx, &res, "sui_multiGetObjects", ids, showAll); err != nil {
		return nil, err
	}

	out := make([]*chain.Object, 0, len(res))
	for _, r := range res {
		obj := r.Data.toObject()
		if obj == nil {
			log.WithField("error", r.Error).Debug("skip unresolved object")
			continue
		}
		out = append(out, obj)
	}

	return out, nil
}

type ownedObjectsResponse struct {
	Data []struct {
		Data *objectData `json:"data"`
	} `json:"data"`
	NextCursor  string `json:"nextCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

func (c *Client) GetOwnedObjects(ctx context.Context, owner string, filter *chain.OwnedFilter, limit int) ([]*chain.Object, error) {
	query := map[string]interface{}{"options": showAll}
	switch {
	case filter == nil:
	case filter.StructType != "":
		query["filter"] = map[string]string{"StructType": filter.StructType}
	case filter.Package != "":
		query["filter"] = map[string]string{"Package": filter.Package}
	}

	var lim interface{}
	if limit > 0 {
		lim = limit
	}

	var res ownedObjectsResponse
	if err := c.call(ctx, &res, "suix_getOwnedObjects", owner, query, nil, lim); err != nil {
		return nil, err
	}

	out := make([]*chain.Object, 0, len(res.Data))
	for _, r := range res.Data {
		if obj := r.Data.toObject(); obj != nil {
			out = append(out, obj)
		}
	}

	return out, nil
}

type dynamicFieldsResponse struct {
	Data []struct {
		Name     interface{} `json:"name"`
		ObjectID string      `json:"objectId"`
	} `json:"data"`
	NextCursor  string `json:"nextCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

func (c *Client) ListCollectionEntries(ctx context.Context, handle string) ([]chain.Entry, error) {
	var res dynamicFieldsResponse
	if err := c.call(ctx, &res, "suix_getDynamicFields", handle); err != nil {
		return nil, err
	}

	out := make([]chain.Entry, 0, len(res.Data))
	for _, d := range res.Data {
		e := chain.Entry{Key: d.Name, ObjectID: d.ObjectID}
		switch name := d.Name.(type) {
		case map[string]interface{}:
			e.KeyValue = name["value"]
		case string:
			e.KeyValue = name
		}
		out = append(out, e)
	}

	return out, nil
}

func (c *Client) ReadCollectionEntry(ctx context.Context, handle string, key interface{}) (*chain.Object, error) {
	var res objectResponse
	if err := c.call(ctx, &res, "suix_getDynamicFieldObject", handle, key); err != nil {
		return nil, err
	}

	obj := res.Data.toObject()
	if obj == nil {
		return nil, fmt.Errorf("%w: entry of %s", chain.ErrNotFound, handle)
	}

	return obj, nil
}

type transactionsResponse struct {
	Data        []map[string]interface{} `json:"data"`
	NextCursor  string                   `json:"nextCursor"`
	HasNextPage bool                     `json:"hasNextPage"`
}

func (c *Client) QueryTransactionHistory(ctx context.Context, sender string, limit int, cursor string) (*chain.TransactionPage, error) {
	query := map[string]interface{}{
		"filter":  map[string]string{"FromAddress": sender},
		"options": map[string]bool{"showInput": true, "showEffects": true},
	}

	var cur interface{}
	if cursor != "" {
		cur = cursor
	}

	var res transactionsResponse
	if err := c.call(ctx, &res, "suix_queryTransactionBlocks", query, cur, limit); err != nil {
		return nil, err
	}

	page := chain.TransactionPage{
		Items:      make([]chain.Transaction, 0, len(res.Data)),
		NextCursor: res.NextCursor,
		HasMore:    res.HasNextPage,
	}
	for _, raw := range res.Data {
		page.Items = append(page.Items, normalizeTransaction(raw))
	}

	return &page, nil
}

// normalizeTransaction folds the two known history entry encodings into one
// shape. New nodes nest the block data under transaction.data; legacy ones
// flatten it, and the command list may appear as "transactions" or
// "commands".
func normalizeTransaction(raw map[string]interface{}) chain.Transaction {
	out := chain.Transaction{Digest: decode.String(raw["digest"])}

	blockData := raw
	if t, ok := raw["transaction"].(map[string]interface{}); ok {
		if d, ok := t["data"].(map[string]interface{}); ok {
			blockData = d
		} else {
			blockData = t
		}
	}

	out.Sender = decode.String(blockData["sender"])
	if out.Sender == "" {
		out.Sender = decode.String(raw["sender"])
	}

	inner := blockData
	if t, ok := blockData["transaction"].(map[string]interface{}); ok {
		inner = t
	}

	out.Kind = decode.String(inner["kind"])
	out.Inputs, _ = inner["inputs"].([]interface{})

	commands, ok := inner["transactions"].([]interface{})
	if !ok {
		commands, _ = inner["commands"].([]interface{})
	}

	for _, cmd := range commands {
		m, ok := cmd.(map[string]interface{})
		if !ok {
			continue
		}

		mc, ok := m["MoveCall"].(map[string]interface{})
		if !ok {
			continue
		}

		call := chain.MoveCall{
			Package:  decode.String(mc["package"]),
			Module:   decode.String(mc["module"]),
			Function: decode.String(mc["function"]),
		}
		call.Arguments, _ = mc["arguments"].([]interface{})

		out.Calls = append(out.Calls, call)
	}

	return out
}
