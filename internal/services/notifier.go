package services

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/ecosire/fleet-billing/internal/config"
	"github.com/ecosire/fleet-billing/internal/models"
	"github.com/ecosire/fleet-billing/internal/params"
)

const uploadPath = "/api/v1/orders/upload-file"

// UploadTimeout bounds the one blocking call in the posting flow.
const UploadTimeout = 20 * time.Second

// Renderer produces the PDF bytes for an invoice.
type Renderer interface {
	RenderInvoicePDF(inv *models.Invoice) ([]byte, error)
}

// DeliveryNotifier pushes a posted invoice's PDF to the external fleet
// system. Strictly best-effort: every failure is logged and swallowed so the
// posting that triggered it is never rolled back.
type DeliveryNotifier struct {
	Renderer Renderer
	Params   *params.Store
	Client   *http.Client

	// DefaultBaseURL is used when the runtime parameter is unset.
	DefaultBaseURL string
}

func NewDeliveryNotifier(renderer Renderer, store *params.Store) *DeliveryNotifier {
	return &DeliveryNotifier{
		Renderer:       renderer,
		Params:         store,
		Client:         &http.Client{Timeout: UploadTimeout},
		DefaultBaseURL: config.DefaultUploadBaseURL,
	}
}

// uploadEndpoint resolves the target URL from the runtime parameter store at
// call time, so changes apply on the next invocation.
func (n *DeliveryNotifier) uploadEndpoint() string {
	base := n.DefaultBaseURL
	if n.Params != nil {
		base = n.Params.Get(params.KeyUploadBaseURL, n.DefaultBaseURL)
	}
	return strings.TrimRight(base, "/") + uploadPath
}

// OnInvoicePosted renders and uploads the invoice PDF after posting has
// committed. No-op unless the invoice is a customer invoice carrying an
// external order id. Never returns an error to the posting flow.
func (n *DeliveryNotifier) OnInvoicePosted(inv *models.Invoice) {
	if inv.ExternalOrderID == "" {
		log.Printf("skip upload of invoice %s: no external order id", invoiceLabel(inv))
		return
	}
	if inv.MoveType != models.MoveTypeCustomerInvoice {
		log.Printf("skip upload of %s: move type %s is not a customer invoice", invoiceLabel(inv), inv.MoveType)
		return
	}

	pdfContent, err := n.Renderer.RenderInvoicePDF(inv)
	if err != nil {
		log.Printf("failed to render PDF for invoice %s, skipping external upload: %v", invoiceLabel(inv), err)
		return
	}

	url := n.uploadEndpoint()
	body, contentType, err := buildUploadForm(inv, pdfContent)
	if err != nil {
		log.Printf("failed to build upload form for invoice %s: %v", invoiceLabel(inv), err)
		return
	}

	resp, err := n.Client.Post(url, contentType, body)
	if err != nil {
		log.Printf("error uploading invoice PDF for %s to %s: %v", invoiceLabel(inv), url, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("uploaded invoice PDF for %s to %s (status %d)", invoiceLabel(inv), url, resp.StatusCode)
		return
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	log.Printf("upload of invoice PDF for %s to %s failed with status %d: %s", invoiceLabel(inv), url, resp.StatusCode, respBody)
}

// buildUploadForm assembles the multipart payload: order_id text field plus
// the PDF as an application/pdf file part.
func buildUploadForm(inv *models.Invoice, pdfContent []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("order_id", inv.ExternalOrderID); err != nil {
		return nil, "", err
	}
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="invoice_%s.pdf"`, invoiceLabel(inv)))
	hdr.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(pdfContent); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func invoiceLabel(inv *models.Invoice) string {
	if inv.Name != "" {
		return inv.Name
	}
	return fmt.Sprintf("%d", inv.ID)
}
