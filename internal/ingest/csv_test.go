package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medetshatayev/offshore/internal/model"
)

const sampleCSV = `id,amount_minor,counterparty,natural_person,bank_name,bank_country,country_code,city,swift_code,status
txn-001,150000,Offshore Holdings Ltd,false,Cayman National Bank,Cayman Islands,KY,George Town,KYXXKYKY,completed
txn-002,-90000,John Smith,true,Deutsche Bank,Germany,DE,Berlin,DEUTDEFF,
txn-003,5000,Tiny Payment LLC,false,Some Bank,Germany,DE,Berlin,,completed
txn-004,200000,Rejected Co,false,Some Bank,Germany,DE,Berlin,,rejected
,100000,No Id Co,false,Some Bank,Germany,DE,Berlin,,completed
`

func TestReadFiltersAndNormalizes(t *testing.T) {
	opts := Options{
		Direction:      model.DirectionOutgoing,
		MinAmountMinor: 10000,
	}

	res, err := Read(strings.NewReader(sampleCSV), opts, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 3, res.FilteredOut, "threshold, status, and missing id rows are dropped")
	require.Len(t, res.Transactions, 2)

	first := res.Transactions[0]
	assert.Equal(t, "txn-001", first.ID)
	assert.Equal(t, model.DirectionOutgoing, first.Direction)
	assert.Equal(t, int64(150000), first.AmountMinor)
	assert.False(t, first.NaturalPerson)
	assert.Equal(t, "KYXXKYKY", first.SwiftCode)

	second := res.Transactions[1]
	assert.Equal(t, "txn-002", second.ID)
	assert.Equal(t, int64(90000), second.AmountMinor, "amounts are sign-normalized")
	assert.True(t, second.NaturalPerson)
}

func TestReadNoThresholdKeepsSmallAmounts(t *testing.T) {
	res, err := Read(strings.NewReader(sampleCSV), Options{Direction: model.DirectionIncoming}, nil)
	require.NoError(t, err)

	ids := make([]string, 0, len(res.Transactions))
	for _, txn := range res.Transactions {
		ids = append(ids, txn.ID)
		assert.Equal(t, model.DirectionIncoming, txn.Direction)
	}
	assert.Equal(t, []string{"txn-001", "txn-002", "txn-003"}, ids)
}

func TestReadHeaderVariants(t *testing.T) {
	data := "ID, Amount_Minor ,Bank_Name\n" + "txn-010,500,Test Bank\n"

	res, err := Read(strings.NewReader(data), Options{Direction: model.DirectionOutgoing}, nil)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "Test Bank", res.Transactions[0].BankName)
	assert.Equal(t, int64(500), res.Transactions[0].AmountMinor)
}

func TestReadMissingIDColumn(t *testing.T) {
	data := "amount_minor,bank_name\n500,Test Bank\n"

	_, err := Read(strings.NewReader(data), Options{Direction: model.DirectionOutgoing}, nil)
	assert.Error(t, err)
}

func TestReadInvalidDirection(t *testing.T) {
	_, err := Read(strings.NewReader(sampleCSV), Options{Direction: "sideways"}, nil)
	assert.Error(t, err)
}
