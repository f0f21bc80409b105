package export

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/shieldify/takedown-portal/internal/models"
)

func TestEscape(t *testing.T) {
	require.Equal(t, `"a,b""c"`, escape(`a,b"c`))
	require.Equal(t, "plain", escape("plain"))
	require.Equal(t, `"line1`+"\n"+`line2"`, escape("line1\nline2"))
}

func TestWriteReportsHeaderAndRow(t *testing.T) {
	number := "TK-2024-0012"
	name := `Smith, "Ace"`
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	report := models.Report{
		ID:              uuid.MustParse("7b0c7e1a-9c4f-4f7e-8a2d-3a1b2c3d4e5f"),
		Status:          models.StatusApproved,
		Platform:        models.PlatformTikTok,
		ReportType:      models.ReportTypeTrademark,
		ReportNumber:    &number,
		AccountPageName: "fakebrand99",
		InfringingURLs:  datatypes.NewJSONSlice([]string{"https://tiktok.com/@fakebrand99"}),
		FormPayload:     datatypes.JSON([]byte(`{}`)),
		CreatedAt:       created,
		UpdatedAt:       created,
		Customer: models.UserProfile{
			Email:    "owner@acme.test",
			FullName: &name,
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteReports(&sb, []models.Report{report}))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, strings.Join(Header, ","), lines[0])
	require.Equal(t,
		`7b0c7e1a-9c4f-4f7e-8a2d-3a1b2c3d4e5f,TK-2024-0012,approved,tiktok,trademark,fakebrand99,owner@acme.test,"Smith, ""Ace""",2024-05-01T12:00:00Z,2024-05-01T12:00:00Z`,
		lines[1])
}

func TestWriteReportsNullables(t *testing.T) {
	report := models.Report{
		ID:              uuid.New(),
		Status:          models.StatusPending,
		Platform:        models.PlatformWebsite,
		ReportType:      models.ReportTypeOther,
		AccountPageName: "someone",
		FormPayload:     datatypes.JSON([]byte(`{}`)),
		Customer:        models.UserProfile{Email: "someone@test.dev"},
	}

	var sb strings.Builder
	require.NoError(t, WriteReports(&sb, []models.Report{report}))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	cells := strings.Split(lines[1], ",")
	require.Equal(t, "", cells[1]) // report_number
	require.Equal(t, "", cells[7]) // customer_name
}
