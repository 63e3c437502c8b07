package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"agent-portal-service/src/internal/entity"
	"agent-portal-service/src/internal/model"

	"github.com/shopspring/decimal"
)

type OrderGateway struct {
	Client *Client
}

func NewOrderGateway(client *Client) *OrderGateway {
	return &OrderGateway{Client: client}
}

func (g *OrderGateway) ListOrders(ctx context.Context, token, userID string) ([]entity.Order, error) {
	var orders []entity.Order
	err := g.Client.do(ctx, http.MethodGet, fmt.Sprintf("/order/admin/%s", userID), token, nil, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

type submitOrderBody struct {
	UserID          string          `json:"userId"`
	ExpectedBalance decimal.Decimal `json:"expectedBalance"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}

type submitOrderResponse struct {
	OrderID string           `json:"orderId"`
	Errors  []model.RowError `json:"errors"`
}

func (g *OrderGateway) Submit(ctx context.Context, token, userID string, expectedBalance, totalAmount decimal.Decimal) (string, []model.RowError, error) {
	body := submitOrderBody{
		UserID:          userID,
		ExpectedBalance: expectedBalance,
		TotalAmount:     totalAmount,
	}
	var resp submitOrderResponse
	err := g.Client.do(ctx, http.MethodPost, "/order/submit", token, body, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.OrderID, resp.Errors, nil
}

type pasteOrdersBody struct {
	AgentID  string `json:"agentId"`
	Network  string `json:"network"`
	TextData string `json:"textData"`
}

type bulkResponse struct {
	Accepted int              `json:"accepted"`
	Errors   []model.RowError `json:"errors"`
}

func (g *OrderGateway) PasteOrders(ctx context.Context, token, agentID, network, textData string) (int, []model.RowError, error) {
	body := pasteOrdersBody{
		AgentID:  agentID,
		Network:  network,
		TextData: textData,
	}
	var resp bulkResponse
	err := g.Client.do(ctx, http.MethodPost, "/order/paste-orders", token, body, &resp)
	if err != nil {
		return 0, nil, err
	}
	return resp.Accepted, resp.Errors, nil
}

// UploadSimplified streams a spreadsheet to the upstream parser as multipart
// form data. onProgress receives the upload percentage as the file body is
// consumed; size must be the file length in bytes.
func (g *OrderGateway) UploadSimplified(ctx context.Context, token, agentID, network, fileName string, file io.Reader, size int64, onProgress func(percent int)) (int, []model.RowError, error) {
	pipeReader, pipeWriter := io.Pipe()
	writer := multipart.NewWriter(pipeWriter)

	go func() {
		err := writeUploadForm(writer, agentID, network, fileName, file, size, onProgress)
		if err != nil {
			pipeWriter.CloseWithError(err)
			return
		}
		pipeWriter.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Client.BaseURL+"/order/upload-simplified", pipeReader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.Client.HTTP.Do(req)
	if err != nil {
		g.Client.Log.Error("order-gateway", err.Error(), "UploadSimplified", fileName)
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return 0, nil, g.Client.asAPIError(resp.StatusCode, data, http.MethodPost, "/order/upload-simplified")
	}

	var parsed bulkResponse
	if len(data) > 0 {
		if err := json.Unmarshal(data, &parsed); err != nil {
			return 0, nil, err
		}
	}
	return parsed.Accepted, parsed.Errors, nil
}

func writeUploadForm(writer *multipart.Writer, agentID, network, fileName string, file io.Reader, size int64, onProgress func(percent int)) error {
	if err := writer.WriteField("agentId", agentID); err != nil {
		return err
	}
	if err := writer.WriteField("network", network); err != nil {
		return err
	}
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, &progressReader{reader: file, total: size, onProgress: onProgress})
	return err
}

// progressReader reports how much of the wrapped reader has been consumed.
type progressReader struct {
	reader     io.Reader
	total      int64
	read       int64
	onProgress func(percent int)
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.read += int64(n)
	if r.onProgress != nil && r.total > 0 {
		percent := int(r.read * 100 / r.total)
		if percent > 100 {
			percent = 100
		}
		r.onProgress(percent)
	}
	return n, err
}
