package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoTranslator struct{}

func (echoTranslator) T(id string) string { return id }

func TestParseTop(t *testing.T) {
	tests := []struct {
		in      string
		want    TopKey
		wantErr bool
	}{
		{"", TopManagement, false},
		{"management", TopManagement, false},
		{"reports", TopReports, false},
		{"approvalRequest", TopApprovalRequest, false},
		{"Reports", TopManagement, true},
		{"admin", TopManagement, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTop(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownKey)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseItem(t *testing.T) {
	k, ok, err := ParseItem("unlockPasswordReset")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ItemUnlockPasswordReset, k)

	_, ok, err = ParseItem("")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ParseItem("master ")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.False(t, ok)
}

func TestLabelIDs(t *testing.T) {
	assert.Equal(t, "app.groupQuote", TopGroupQuote.LabelID())
	assert.Equal(t, "header.managementItems.userId", ItemUserID.LabelID())
}

func TestBuild(t *testing.T) {
	menus := Build(echoTranslator{}, TopManagement, ItemSetting, true)
	require.Len(t, menus, len(TopKeys))

	mgmt := menus[0]
	assert.True(t, mgmt.Active)
	assert.Equal(t, "app.management", mgmt.Label)
	require.Len(t, mgmt.Items, len(ManagementItems))
	assert.True(t, mgmt.Items[1].Active)
	assert.Equal(t, "/app?top=management&item=setting", mgmt.Items[1].Href)
	assert.Equal(t, "/app/users", mgmt.Items[2].Href)
	assert.Equal(t, "/app/unlock", mgmt.Items[3].Href)

	for _, m := range menus[1:] {
		assert.False(t, m.Active)
		assert.Empty(t, m.Items)
	}
}

func TestBuild_HidesAdminItems(t *testing.T) {
	menus := Build(echoTranslator{}, TopReports, "", false)

	assert.True(t, menus[len(menus)-1].Active)
	for _, it := range menus[0].Items {
		assert.NotEqual(t, ItemUnlockPasswordReset, it.Key)
		assert.False(t, it.Active)
	}
	assert.Len(t, menus[0].Items, len(ManagementItems)-1)
}
