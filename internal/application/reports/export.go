package reports

import (
	"bytes"
	"encoding/csv"

	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
)

// utf8BOM al frente del CSV para que Excel en Windows detecte UTF-8.
// Sin él los encabezados japoneses se muestran corruptos.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvHeaders encabezados del CSV en japonés (el portal sirve al mercado
// japonés y el CSV se abre directo en Excel): fecha de conversión, empresa,
// categoría, revenue, comisión, estado, tracking code y teléfono enmascarado.
var csvHeaders = []string{"成約日時", "企業名", "カテゴリ", "売上", "報酬", "ステータス", "トラッキングコード", "電話番号"}

const csvTimeLayout = "2006-01-02 15:04:05"

// ExportCSV serializa el reporte como CSV descargable: BOM UTF-8, fila de
// encabezados y una fila por conversión, en el mismo orden que resp.Data.
func ExportCSV(resp *dto.ReportResponse) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeaders); err != nil {
		return nil, err
	}
	for _, row := range resp.Data {
		phone := ""
		if row.PhoneNumber != nil {
			phone = *row.PhoneNumber
		}
		record := []string{
			row.ConvertedAt.Format(csvTimeLayout),
			row.CompanyName,
			row.Category,
			row.Revenue.String(),
			row.Commission.String(),
			row.Status,
			row.TrackingCode,
			phone,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
