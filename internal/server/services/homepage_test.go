package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeHomePageInput(t *testing.T, body string) HomePageInput {
	t.Helper()
	var in HomePageInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

const requiredFields = `"heroTitle":"HT","heroDescription":"HD","aboutParagraph1":"A1","aboutParagraph2":"A2"`

func TestHomePageGet_CreatesDefaultsOnce(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRM()
	svc := NewHomePageService(db, rm, newClock())

	hp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSiteTitle, hp.SiteTitle)
	assert.Nil(t, hp.LogoImage)
	assert.Equal(t, 1, rm.homepage.creates)

	again, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hp, again)
	assert.Equal(t, 1, rm.homepage.creates, "existing row is returned as is")
}

func TestHomePageGet_StoreError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRM()
	rm.homepage.getErr = errBoom{}

	_, err := NewHomePageService(db, rm, newClock()).Get(context.Background())
	assert.ErrorIs(t, err, errBoom{})
}

func TestHomePageUpdate(t *testing.T) {
	logo := "https://cdn/logo.png"

	tests := []struct {
		name  string
		start *models.HomePage
		body  string
		check func(t *testing.T, hp *models.HomePage)
	}{
		{
			name: "absent record is created from input over defaults",
			body: `{` + requiredFields + `}`,
			check: func(t *testing.T, hp *models.HomePage) {
				assert.Equal(t, models.DefaultSiteTitle, hp.SiteTitle)
				assert.Equal(t, "HT", hp.HeroTitle)
				assert.False(t, hp.UseLogo)
			},
		},
		{
			name:  "empty site title and false useLogo overwrite",
			start: &models.HomePage{SiteTitle: "Old", UseLogo: true, LogoImage: &logo},
			body:  `{"siteTitle":"","useLogo":false,` + requiredFields + `}`,
			check: func(t *testing.T, hp *models.HomePage) {
				assert.Equal(t, "", hp.SiteTitle)
				assert.False(t, hp.UseLogo)
				require.NotNil(t, hp.LogoImage, "absent logoImage is kept")
				assert.Equal(t, logo, *hp.LogoImage)
			},
		},
		{
			name:  "null logo clears, null title ignored",
			start: &models.HomePage{SiteTitle: "Old", UseLogo: true, LogoImage: &logo},
			body:  `{"siteTitle":null,"useLogo":null,"logoImage":null,` + requiredFields + `}`,
			check: func(t *testing.T, hp *models.HomePage) {
				assert.Equal(t, "Old", hp.SiteTitle)
				assert.True(t, hp.UseLogo)
				assert.Nil(t, hp.LogoImage)
			},
		},
		{
			name:  "new logo is stored",
			start: &models.HomePage{SiteTitle: "Old"},
			body:  `{"useLogo":true,"logoImage":"data:image/png;base64,AA",` + requiredFields + `}`,
			check: func(t *testing.T, hp *models.HomePage) {
				assert.True(t, hp.UseLogo)
				require.NotNil(t, hp.LogoImage)
				assert.Equal(t, "data:image/png;base64,AA", *hp.LogoImage)
				assert.Equal(t, "A2", hp.AboutParagraph2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newSQLMockDB(t)
			mock.ExpectBegin()
			mock.ExpectCommit()

			rm := newFakeRM()
			rm.homepage.row = tt.start
			clk := newClock()
			clk.Advance(time.Hour)

			hp, err := NewHomePageService(db, rm, clk).Update(context.Background(), decodeHomePageInput(t, tt.body))
			require.NoError(t, err)
			tt.check(t, hp)
			assert.Equal(t, t0.Add(time.Hour), hp.UpdatedAt)
			assert.Equal(t, hp, rm.homepage.row)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHomePageUpdate_RequiresFields(t *testing.T) {
	db, _ := newSQLMockDB(t)
	svc := NewHomePageService(db, newFakeRM(), newClock())

	_, err := svc.Update(context.Background(), decodeHomePageInput(t, `{"heroTitle":"HT","heroDescription":"HD","aboutParagraph1":"A1"}`))
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.EqualError(t, err, MsgAllFieldsRequired)
}

func TestHomePageUpdate_RollsBackOnError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := newFakeRM()
	rm.homepage.updErr = errBoom{}

	_, err := NewHomePageService(db, rm, newClock()).Update(context.Background(), decodeHomePageInput(t, `{`+requiredFields+`}`))
	assert.ErrorIs(t, err, errBoom{})
	assert.NoError(t, mock.ExpectationsWereMet())
}
