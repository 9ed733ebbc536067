package api

import (
	"context"

	"go.uber.org/zap"
)

// InitializePaymentRequest тело запроса инициализации платежа.
// Email и сумма приходят из профиля клиента, имя - из формы оплаты.
type InitializePaymentRequest struct {
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Email                string `json:"email"`
	Amount               int    `json:"amount"`
	ClientID             string `json:"clientId"`
	CounselorID          string `json:"counselorId"`
	ScheduleID           string `json:"scheduleId"`
	TransactionReference string `json:"transactionReference"`
}

// InitializePaymentResponse ответ с URL платёжного шлюза Chapa.
type InitializePaymentResponse struct {
	ChapaRedirectURL string `json:"chapaRedirectUrl"`
}

// InitializePayment начинает платёж и возвращает redirect URL шлюза.
// Клиент со шлюзом напрямую не общается - только переходит по ссылке.
func (c *Client) InitializePayment(ctx context.Context, token string, req InitializePaymentRequest) (*InitializePaymentResponse, error) {
	var resp InitializePaymentResponse
	if err := c.post(ctx, "/payment/initialize", token, req, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("Payment initialized",
		zap.String("tx_ref", req.TransactionReference),
		zap.String("schedule_id", req.ScheduleID))

	return &resp, nil
}
