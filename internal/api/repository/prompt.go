package repository

import (
	"fmt"
	"strconv"
	"strings"

	"market-lens/internal/api/dto"
)

// fmtMetric renders an optional metric for prompt embedding. Absent
// values surface as N/A so the model does not invent numbers.
func fmtMetric(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// BuildStockAnalysisPrompt renders the Indonesian analysis prompt with
// every metric group embedded as JSON. newsContext and question are
// optional sections appended only when non-empty.
func BuildStockAnalysisPrompt(symbol, companyName string, m *dto.MetricSet, question, newsContext string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`Kamu adalah **analis saham profesional**.
Aku akan memberikan **data saham dalam format JSON**.

Tugasmu adalah menyusun **ringkasan analisis saham** dengan format berikut:

1. **Valuasi**
* Bandingkan metrik valuasi (PER, PBV, PEG) dengan standar umum pasar.
* Berikan kesimpulan apakah saham tergolong **murah, sedang, atau mahal**.

2. **Tren Kinerja Keuangan**
* Uraikan pertumbuhan pendapatan, laba, margin usaha, dan margin bersih.
* Gunakan format angka ribuan dengan satuan (contoh: 1,234B, 125M).

3. **Posisi Neraca**
* Analisis likuiditas (Current Ratio, Quick Ratio, posisi kas).
* Komentari tingkat utang (Debt to Equity).
* Simpulkan apakah neraca tergolong **sehat atau tidak**.

4. **Momentum Perdagangan**
* Gunakan data teknikal (harga saat ini, range 52 minggu, RSI, MA50/MA200, volatilitas).
* Berikan pandangan singkat mengenai potensi pergerakan jangka pendek (**gap up atau gap down**).

5. **Rekomendasi Trading**
* Akhiri dengan rekomendasi ringkas beli, jual, atau tahan.
* Sebutkan **harga beli ideal (support/entry point)** dan **harga jual target (resistance/exit point)**.
* Gunakan bahasa Indonesia yang profesional, ringkas, dan mudah dipahami trader harian.

**Gaya penulisan:**
* Ringkas, jelas, menggunakan poin-poin bila perlu.
* Hindari penjelasan akademis yang terlalu panjang.
* Fokus pada insight praktis untuk trader (entry & exit level).

Berikut adalah data JSON yang akan dianalisis:
{
  "symbol": %q,
  "company_name": %q,
  "current_price": %s,

  "valuation": {
    "pe_ratio": %s,
    "forward_pe": %s,
    "peg_ratio": %s,
    "price_to_book": %s,
    "price_to_sales": %s,
    "debt_to_equity": %s
  },

  "profitability": {
    "profit_margin": %s,
    "operating_margin": %s,
    "gross_margin": %s,
    "return_on_equity": %s,
    "return_on_assets": %s
  },

  "growth": {
    "revenue_growth": %s,
    "earnings_growth": %s,
    "price_change_1y": %s
  },

  "solvency": {
    "current_ratio": %s,
    "quick_ratio": %s,
    "cash_per_share": %s,
    "free_cash_flow": %s,
    "dividend_yield": %s,
    "payout_ratio": %s
  },

  "technical": {
    "52_week_high": %s,
    "52_week_low": %s,
    "volatility": %s,
    "ma_50": %s,
    "ma_200": %s,
    "rsi": %s,
    "beta": %s
  }
}
`,
		symbol,
		companyName,
		fmtMetric(m.CurrentPrice),
		fmtMetric(m.PERatio),
		fmtMetric(m.ForwardPE),
		fmtMetric(m.PEGRatio),
		fmtMetric(m.PriceToBook),
		fmtMetric(m.PriceToSales),
		fmtMetric(m.DebtToEquity),
		fmtMetric(m.ProfitMargin),
		fmtMetric(m.OperatingMargin),
		fmtMetric(m.GrossMargin),
		fmtMetric(m.ReturnOnEquity),
		fmtMetric(m.ReturnOnAssets),
		fmtMetric(m.RevenueGrowth),
		fmtMetric(m.EarningsGrowth),
		fmtMetric(m.PriceChange1Y),
		fmtMetric(m.CurrentRatio),
		fmtMetric(m.QuickRatio),
		fmtMetric(m.CashPerShare),
		fmtMetric(m.FreeCashFlow),
		fmtMetric(m.DividendYield),
		fmtMetric(m.PayoutRatio),
		fmtMetric(m.High52W),
		fmtMetric(m.Low52W),
		fmtMetric(m.Volatility),
		fmtMetric(m.MA50),
		fmtMetric(m.MA200),
		fmtMetric(m.RSI),
		fmtMetric(m.Beta),
	))

	if newsContext != "" {
		sb.WriteString("\nBerita terbaru terkait saham ini:\n")
		sb.WriteString(newsContext)
		sb.WriteString("\n")
	}

	if question != "" {
		sb.WriteString("\nPertanyaan tambahan dari pengguna, jawab di bagian akhir analisis:\n")
		sb.WriteString(question)
		sb.WriteString("\n")
	}

	return sb.String()
}
