package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `INSTNM,STABBR,ADM_RATE,HIGHDEG,TUITIONFEE_IN,TUITFTE,UNUSED
Alpha College,OH,0.5,3,10000,500,x
Beta University,PA,NA,4,20000,700,y
Alpha College,OH,0.5,3,10000,500,z
Gamma Institute,NY,0.9,2,,900,w
`

func TestReadRecords(t *testing.T) {
	t.Run("projects and deduplicates", func(t *testing.T) {
		records, err := ReadRecords(strings.NewReader(sampleCSV), DefaultColumnMapping())
		require.NoError(t, err)
		// the second Alpha College row is an exact duplicate after projection
		require.Len(t, records, 3)

		assert.Equal(t, "Alpha College", records[0].Institution)
		assert.Equal(t, "OH", records[0].State)
		assert.Equal(t, "NA", records[1].AdmissionRate)
		assert.Equal(t, "", records[2].TotalTuition)
	})

	t.Run("missing required header fails", func(t *testing.T) {
		csv := "INSTNM,STABBR\nAlpha,OH\n"
		_, err := ReadRecords(strings.NewReader(csv), DefaultColumnMapping())
		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("header-only file fails", func(t *testing.T) {
		csv := "INSTNM,STABBR,ADM_RATE,HIGHDEG,TUITIONFEE_IN,TUITFTE\n"
		_, err := ReadRecords(strings.NewReader(csv), DefaultColumnMapping())
		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("custom column mapping", func(t *testing.T) {
		csv := "name,st,rate,deg,tuition,fees\nA,OH,0.1,2,100,5\n"
		mapping := ColumnMapping{
			Institution:    "name",
			State:          "st",
			AdmissionRate:  "rate",
			Degrees:        "deg",
			TotalTuition:   "tuition",
			AdditionalFees: "fees",
		}
		records, err := ReadRecords(strings.NewReader(csv), mapping)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "0.1", records[0].AdmissionRate)
	})
}

func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(""))
	assert.True(t, IsMissing("NA"))
	assert.True(t, IsMissing("NULL"))
	assert.True(t, IsMissing("  NA  "))
	assert.False(t, IsMissing("0"))
	assert.False(t, IsMissing("na"))
}
