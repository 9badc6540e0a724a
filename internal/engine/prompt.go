package engine

import (
	"fmt"
	"strings"

	"github.com/medetshatayev/offshore/internal/model"
	"github.com/medetshatayev/offshore/internal/registry"
)

// buildInstructions renders the system-level analysis rules, embedding the
// full jurisdiction list. Built once per file and shared by every group.
func buildInstructions(reg *registry.Registry) string {
	var b strings.Builder

	b.WriteString("You are a bank compliance analyst screening payment transactions for offshore risk.\n\n")

	b.WriteString("OFFSHORE JURISDICTION LIST (the single source of truth):\n")
	if reg.Empty() {
		b.WriteString("(list unavailable; rely on widely recognized offshore financial centers)\n")
	} else {
		for _, entry := range reg.Entries() {
			fmt.Fprintf(&b, "- %s (%s)\n", entry.EnglishName, entry.ISOCode)
		}
	}

	b.WriteString(`
ANALYSIS RULES:
1. A jurisdiction is offshore if and only if it appears in the list above.
2. The bank's registered address and the SWIFT code country are the primary
   indicators. Resolve the bank's actual registered address from its name
   when the address field is missing or ambiguous.
3. The counterparty's address is a secondary indicator; weigh it lower than
   the bank's location.
4. Codes with a region suffix (for example US-WY) mean only that specific
   sub-jurisdiction is offshore, not the whole country. Flag such entries
   only when the address or region text places the party there.
5. Pre-computed signals are hints from exact and fuzzy matching against the
   list. Verify them against the transaction fields; do not repeat them
   blindly.

For each transaction assign exactly one label:
- OFFSHORE_YES: at least one party is clearly located in a listed jurisdiction.
- OFFSHORE_SUSPECT: indirect or conflicting indicators of a listed jurisdiction.
- OFFSHORE_NO: no connection to any listed jurisdiction.

OUTPUT FORMAT (strict JSON, no other text):
{
  "results": [
    {
      "transaction_id": "<id exactly as given>",
      "label": "OFFSHORE_YES" | "OFFSHORE_SUSPECT" | "OFFSHORE_NO",
      "confidence": <number between 0 and 1>,
      "reasoning": "<10 to 1000 characters explaining the decision>",
      "sources": ["<http(s) URL>", ...]
    }
  ]
}

Return one result per transaction, covering every transaction id exactly once.
The sources array may be empty; include only http or https URLs.
`)

	return b.String()
}

// correctiveInstructions is appended to the system rules on semantic retries,
// quoting the previous validation failure.
func correctiveInstructions(lastErr error) string {
	detail := "the response did not match the required schema"
	if lastErr != nil {
		detail = lastErr.Error()
	}

	return fmt.Sprintf(`

IMPORTANT: your previous answer for this exact request was rejected:
%s

Re-read the output format above and answer again. Respond with the JSON object
only. Cover every transaction id exactly once, use only the three allowed
labels, keep confidence within [0,1], and keep reasoning between 10 and 1000
characters.`, detail)
}

// buildGroupPayload renders the numbered per-transaction blocks for one group.
func buildGroupPayload(txns []model.NormalizedTransaction, signals []model.SignalSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Screen the following %d transactions.\n", len(txns))

	for i, txn := range txns {
		fmt.Fprintf(&b, "\n--- Transaction %d ---\n", i+1)
		fmt.Fprintf(&b, "transaction_id: %s\n", txn.ID)
		fmt.Fprintf(&b, "direction: %s\n", txn.Direction)

		writeField(&b, "bank_name", txn.BankName)
		if txn.BankName != "" && txn.BankAddress == "" {
			b.WriteString("bank_address: unknown, resolve the registered address of this bank\n")
		} else {
			writeField(&b, "bank_address", txn.BankAddress)
		}
		writeField(&b, "bank_country", txn.BankCountryField)
		writeField(&b, "country_code", txn.CountryCode)
		writeField(&b, "city", txn.City)
		writeField(&b, "swift_code", txn.SwiftCode)

		// Individuals have no registered address worth resolving; include
		// counterparty detail only for legal entities.
		if !txn.NaturalPerson {
			writeField(&b, "counterparty", txn.CounterpartyName)
			if txn.CounterpartyName != "" && txn.CounterpartyAddress == "" {
				b.WriteString("counterparty_address: unknown, resolve the registered address of this company\n")
			} else {
				writeField(&b, "counterparty_address", txn.CounterpartyAddress)
			}
		}

		writeField(&b, "correspondent_info", txn.CorrespondentInfo)
		writeField(&b, "payment_details", txn.PaymentDetails)

		writeSignals(&b, signals[i])
	}

	return b.String()
}

func writeField(b *strings.Builder, name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", name, value)
}

// writeSignals renders the pre-computed indicator block for one transaction.
func writeSignals(b *strings.Builder, s model.SignalSet) {
	var lines []string

	if s.SwiftCountryCode != "" {
		status := "not in the list"
		if s.SwiftIsOffshore != nil && *s.SwiftIsOffshore {
			status = "IN the offshore list"
		}
		lines = append(lines, fmt.Sprintf("SWIFT country %s is %s", s.SwiftCountryCode, status))
	}
	if m := s.CountryCodeMatch; m != nil {
		lines = append(lines, fmt.Sprintf("country code matches %s (score %.2f)", m.Value, m.Score))
	}
	if m := s.CountryNameMatch; m != nil {
		lines = append(lines, fmt.Sprintf("country field matches %s (score %.2f)", m.Value, m.Score))
	}
	if m := s.CityMatch; m != nil {
		lines = append(lines, fmt.Sprintf("city matches %s (score %.2f)", m.Value, m.Score))
	}

	if len(lines) == 0 {
		b.WriteString("signals: none matched the offshore list\n")
		return
	}

	b.WriteString("signals:\n")
	for _, line := range lines {
		fmt.Fprintf(b, "  - %s\n", line)
	}
}
