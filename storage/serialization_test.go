package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baytlab/bayt/core"
)

func TestRecordSerialization(t *testing.T) {
	record := &core.Record{
		ID:          "v1",
		Verse:       "قِفَا نَبْكِ مِنْ ذِكْرَى حَبِيبٍ وَمَنْزِلِ",
		Annotation:  "يستوقف صاحبيه ليبكي على ديار الحبيبة",
		Poet:        "امرؤ القيس",
		Poem:        "معلقة امرئ القيس",
		VerseNumber: 1,
		SourceBook:  "شرح المعلقات السبع",
		Normalized:  "قفا نبك من ذكري حبيب ومنزل",
		Vector:      []float32{0.1, -0.5, 0.9},
	}

	data := MarshalRecord(record)
	got, err := UnmarshalRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestRecordSerialization_EmptyOptionalFields(t *testing.T) {
	record := &core.Record{
		ID:         "v2",
		Verse:      "وقوفا بها",
		Normalized: "وقوفا بها",
	}

	data := MarshalRecord(record)
	got, err := UnmarshalRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestIDSerialization(t *testing.T) {
	id := core.IDFromContent("قفا نبك")

	got, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestUnmarshalRecord_Truncated(t *testing.T) {
	record := &core.Record{ID: "v1", Verse: "قفا نبك"}
	data := MarshalRecord(record)

	_, err := UnmarshalRecord(data[:len(data)/2])
	assert.Error(t, err)
}
