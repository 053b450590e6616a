package cli

import (
	"testing"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/gt"
)

func TestIndexConfig(t *testing.T) {
	cfg := getIndexConfig()
	gt.NoError(t, cfg.Validate()).Required()

	byName := map[string]fireconf.Collection{}
	for _, col := range cfg.Collections {
		byName[col.Name] = col
	}

	cases, ok := byName["cases"]
	gt.Bool(t, ok).True()
	gt.A(t, cases.Indexes).Length(1)
	gt.A(t, cases.Indexes[0].Fields).Length(3)
	gt.Value(t, cases.Indexes[0].Fields[0].Path).Equal("CaseType")
	gt.Value(t, cases.Indexes[0].Fields[2].Path).Equal("CreatedAt")
	gt.Value(t, cases.Indexes[0].Fields[2].Order).Equal(fireconf.OrderDescending)

	audit, ok := byName["audit"]
	gt.Bool(t, ok).True()
	gt.A(t, audit.Indexes).Length(1)
	gt.Value(t, audit.Indexes[0].Fields[0].Path).Equal("CaseID")
	gt.Value(t, audit.Indexes[0].Fields[1].Order).Equal(fireconf.OrderAscending)
}
