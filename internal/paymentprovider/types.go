package paymentprovider

// Amount сумма платежа в формате провайдера.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// CreatePaymentRequest запрос на создание платежа по сохранённому токену.
type CreatePaymentRequest struct {
	Amount            Amount `json:"amount"`
	Capture           bool   `json:"capture"`
	PaymentMethodID   string `json:"payment_method_id,omitempty"`
	SavePaymentMethod bool   `json:"save_payment_method"`
	Description       string `json:"description"`
	Metadata          struct {
		UserUID string `json:"user_uid"`
	} `json:"metadata"`
}

// CreatePaymentResponse ответ провайдера при создании платежа.
type CreatePaymentResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	Amount        Amount `json:"amount"`
	PaymentMethod struct {
		ID    string `json:"id"`
		Saved bool   `json:"saved"`
	} `json:"payment_method"`
	Confirmation struct {
		Type            string `json:"type"`
		ConfirmationURL string `json:"confirmation_url"`
	} `json:"confirmation,omitempty"`
}
