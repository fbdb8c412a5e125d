package report

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// AlgSHA256 identificador del algoritmo del digest.
const AlgSHA256 = "http://www.w3.org/2001/04/xmlenc#sha256"

// ErrDigestMismatch el contenido del export no coincide con su digest.
var ErrDigestMismatch = errors.New("report: el digest del libro no coincide")

// LedgerXML exporta el historial como XML con un digest SHA-256 sobre la forma
// canónica (C14N) del elemento <transactions>.
func LedgerXML(rows []dto.TransactionResponse, generatedAt time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("ledger")
	root.CreateAttr("generatedAt", generatedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("count", strconv.Itoa(len(rows)))

	txs := root.CreateElement("transactions")
	for _, r := range rows {
		el := txs.CreateElement("transaction")
		el.CreateAttr("id", r.ID)
		el.CreateAttr("type", r.Type)
		el.CreateAttr("date", r.Date.Format("2006-01-02"))
		p := el.CreateElement("product")
		p.CreateAttr("id", r.ProductID)
		p.SetText(r.ProductName)
		el.CreateElement("quantity").SetText(strconv.Itoa(r.Quantity))
		optional(el, "from", r.FromWarehouseID)
		optional(el, "to", r.ToWarehouseID)
		optional(el, "manager", r.ManagerID)
		optional(el, "admin", r.AdminID)
		if r.Type == "sale" {
			el.CreateElement("amount").SetText(r.SaleAmount.StringFixed(2))
			c := el.CreateElement("customer")
			c.CreateAttr("phone", r.CustomerPhone)
			c.CreateAttr("city", r.CustomerCity)
			c.SetText(r.CustomerName)
			optional(el, "sale", r.SaleID)
		}
		optional(el, "contractor", r.ContractorName)
		optional(el, "notes", r.Notes)
		optional(el, "comments", r.Comments)
	}
	digestEl := root.CreateElement("digest")
	digestEl.CreateAttr("algorithm", AlgSHA256)
	doc.Indent(2)

	digest, err := digestOf(txs)
	if err != nil {
		return nil, err
	}
	digestEl.SetText(digest)
	return doc.WriteToBytes()
}

// VerifyLedgerXML recalcula el digest de un export y lo compara con el guardado.
func VerifyLedgerXML(data []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("report: parsear XML: %w", err)
	}
	root := doc.SelectElement("ledger")
	if root == nil {
		return fmt.Errorf("report: falta <ledger>")
	}
	txs := root.SelectElement("transactions")
	digestEl := root.SelectElement("digest")
	if txs == nil || digestEl == nil {
		return fmt.Errorf("report: faltan <transactions> o <digest>")
	}
	digest, err := digestOf(txs)
	if err != nil {
		return err
	}
	if digest != digestEl.Text() {
		return ErrDigestMismatch
	}
	return nil
}

func digestOf(el *etree.Element) (string, error) {
	sub := etree.NewDocument()
	sub.SetRoot(el.Copy())
	raw, err := sub.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("report: serializar transacciones: %w", err)
	}
	canonical, err := canonicalizeXML(raw)
	if err != nil {
		return "", fmt.Errorf("report: c14n: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

func optional(parent *etree.Element, tag, value string) {
	if value != "" {
		parent.CreateElement(tag).SetText(value)
	}
}
