package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-user-admin/internal/facades"
	"github.com/sbilibin2017/gw-user-admin/internal/models"
	"github.com/sbilibin2017/gw-user-admin/internal/repositories"
	"github.com/sbilibin2017/gw-user-admin/internal/validation"
)

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func newTestValidator() *validation.Validator {
	return validation.New(validation.WithClock(func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}))
}

func newTestFormService(t *testing.T) (*FormService, *MockUserGateway, *repositories.ViewMemoryRepository) {
	ctrl := gomock.NewController(t)
	users := NewMockUserGateway(ctrl)
	store := repositories.NewViewMemoryRepository(time.Minute)
	return NewFormService(store, users, newTestValidator()), users, store
}

// pngData starts with the PNG signature, enough for the format to be detected.
var pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR-A")

func annFields() map[string]string {
	return map[string]string{
		models.FieldName:     "Ann",
		models.FieldEmail:    "ann@x.com",
		models.FieldPassword: "secret1",
		models.FieldRole:     "user",
		models.FieldAddress:  "1 Main St",
		models.FieldGender:   "female",
	}
}

func TestFormService_CreateAnn(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestFormService(t)

	d, err := svc.NewCreateDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ModeCreate, d.Mode)
	assert.True(t, d.Form.Active)
	assert.Equal(t, models.RoleUser, d.Form.Role)

	_, err = svc.ToggleLanguage(ctx, d.ID, nil, "English")
	require.NoError(t, err)

	var sent models.Payload
	users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.Payload) (*models.User, error) {
			sent = p
			return &models.User{ID: "7", Name: "Ann"}, nil
		})

	_, err = svc.Submit(ctx, d.ID, annFields(), nil)
	require.NoError(t, err)

	want := models.Metadata{
		Name:      strPtr("Ann"),
		Email:     strPtr("ann@x.com"),
		Password:  strPtr("secret1"),
		Role:      strPtr("user"),
		Address:   strPtr("1 Main St"),
		Active:    boolPtr(true),
		Languages: &[]string{"English"},
		Phone:     strPtr(""),
		Gender:    strPtr("female"),
	}
	if diff := cmp.Diff(want, sent.Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, sent.File)

	_, err = svc.Draft(ctx, d.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound, "submitted draft is discarded")
}

func TestFormService_SubmitInvalidMakesNoRequest(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestFormService(t)

	d, err := svc.NewCreateDraft(ctx)
	require.NoError(t, err)

	fields := annFields()
	fields[models.FieldEmail] = "not-an-email"
	fields[models.FieldPassword] = "123"

	got, err := svc.Submit(ctx, d.ID, fields, nil)
	assert.ErrorIs(t, err, validation.ErrInvalid)
	assert.Equal(t, map[string]string{
		models.FieldEmail:    "Invalid email address",
		models.FieldPassword: "Password must be at least 6 characters",
	}, got.Errors)
	assert.False(t, got.Submitting)

	stored, err := svc.Draft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "not-an-email", stored.Form.Email, "entered values are kept")
	assert.Empty(t, stored.Form.Password, "the password is never stored")
	assert.Len(t, stored.Errors, 2)
	assert.False(t, stored.Submitting)

	// Changing a field clears its error only.
	changed, err := svc.ChangeField(ctx, d.ID, models.FieldEmail, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{models.FieldPassword: "Password must be at least 6 characters"}, changed.Errors)
}

func TestFormService_SubmitFailureKeepsForm(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "network", err: facades.ErrNetwork},
		{name: "rejected", err: &facades.StatusError{Op: "create user", Status: 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, users, _ := newTestFormService(t)

			d, err := svc.NewCreateDraft(ctx)
			require.NoError(t, err)

			users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			got, err := svc.Submit(ctx, d.ID, annFields(), nil)
			assert.ErrorIs(t, err, ErrSubmitFailed)
			assert.ErrorIs(t, err, facades.ErrRequestFailed)
			assert.Equal(t, NoticeSubmitFailed, got.Notice)
			assert.False(t, got.Submitting)

			stored, err := svc.Draft(ctx, d.ID)
			require.NoError(t, err)
			assert.Equal(t, "Ann", stored.Form.Name)
			assert.Equal(t, NoticeSubmitFailed, stored.Notice)

			// Edits posted with the dismiss button are kept.
			dismissed, err := svc.DismissNotice(ctx, d.ID, map[string]string{models.FieldName: "Annabel"})
			require.NoError(t, err)
			assert.Empty(t, dismissed.Notice)

			stored, err = svc.Draft(ctx, d.ID)
			require.NoError(t, err)
			assert.Empty(t, stored.Notice)
			assert.Equal(t, "Annabel", stored.Form.Name)
			assert.Equal(t, "ann@x.com", stored.Form.Email)
		})
	}
}

func TestFormService_SubmitInFlight(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestFormService(t)

	d, err := svc.NewCreateDraft(ctx)
	require.NoError(t, err)

	ok, err := store.AcquireSubmit(ctx, d.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// No Create call is expected: the gateway mock fails the test otherwise.
	_, err = svc.Submit(ctx, d.ID, annFields(), nil)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	stored, err := svc.Draft(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Form.Name, "a rejected submit leaves the draft untouched")
	assert.True(t, stored.Submitting)
}

func TestFormService_SubmittingFollowsLock(t *testing.T) {
	ctx := context.Background()
	svc, users, store := newTestFormService(t)

	d, err := svc.NewCreateDraft(ctx)
	require.NoError(t, err)

	users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ models.Payload) (*models.User, error) {
			during, err := svc.Draft(ctx, d.ID)
			require.NoError(t, err)
			assert.True(t, during.Submitting, "the form shows the pending submission")
			return nil, facades.ErrNetwork
		})

	_, err = svc.Submit(ctx, d.ID, annFields(), nil)
	require.ErrorIs(t, err, ErrSubmitFailed)

	after, err := svc.Draft(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, after.Submitting)

	// A lock left behind by a lost request only lasts as long as it is held.
	ok, err := store.AcquireSubmit(ctx, d.ID)
	require.NoError(t, err)
	require.True(t, ok)
	held, err := svc.Draft(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, held.Submitting)

	require.NoError(t, store.ReleaseSubmit(ctx, d.ID))
	released, err := svc.Draft(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, released.Submitting)
}

func TestFormService_SubmitReleasesLock(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestFormService(t)

	d, err := svc.NewCreateDraft(ctx)
	require.NoError(t, err)

	gomock.InOrder(
		users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, facades.ErrNetwork),
		users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&models.User{ID: "7"}, nil),
	)

	_, err = svc.Submit(ctx, d.ID, annFields(), nil)
	require.ErrorIs(t, err, ErrSubmitFailed)

	_, err = svc.Submit(ctx, d.ID, annFields(), nil)
	assert.NoError(t, err)
}

func TestFormService_NewUpdateDraft(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestFormService(t)

	birth, err := models.ParseDate("2001-05-17")
	require.NoError(t, err)

	users.EXPECT().Get(gomock.Any(), models.UserID("42")).Return(&models.User{
		ID:        "42",
		Name:      "Ann",
		Email:     "ann@x.com",
		Role:      models.RoleAdmin,
		Address:   "1 Main St",
		Active:    false,
		Languages: []string{"French", "German"},
		Birthdate: &birth,
		Gender:    models.GenderFemale,
		Image:     "http://cdn/ann.png",
	}, nil)

	d, err := svc.NewUpdateDraft(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, models.ModeUpdate, d.Mode)
	assert.Equal(t, models.UserID("42"), d.UserID)
	assert.Equal(t, "Ann", d.Form.Name)
	assert.False(t, d.Form.Active)
	assert.Equal(t, models.LanguageSet{"French", "German"}, d.Form.Languages)
	assert.Equal(t, "2001-05-17", d.Form.Birthdate)
	assert.Equal(t, "http://cdn/ann.png", d.Preview)
	assert.Empty(t, d.ImageInput)
}

func TestFormService_NewUpdateDraftErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "missing user", err: facades.ErrNotFound, wantErr: ErrUserNotFound},
		{name: "network", err: facades.ErrNetwork, wantErr: facades.ErrRequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newTestFormService(t)
			users.EXPECT().Get(gomock.Any(), models.UserID("99")).Return(nil, tt.err)

			d, err := svc.NewUpdateDraft(context.Background(), "99")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, d)
		})
	}
}

func TestFormService_UpdateSendsPartialPayload(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestFormService(t)

	users.EXPECT().Get(gomock.Any(), models.UserID("42")).Return(&models.User{
		ID: "42", Name: "Ann", Email: "ann@x.com", Role: "user", Address: "1 Main St", Gender: "female", Active: true,
	}, nil)
	d, err := svc.NewUpdateDraft(ctx, "42")
	require.NoError(t, err)

	var sent models.Payload
	users.EXPECT().Update(gomock.Any(), models.UserID("42"), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ models.UserID, p models.Payload) (*models.User, error) {
			sent = p
			return &models.User{ID: "42"}, nil
		})

	_, err = svc.Submit(ctx, d.ID, map[string]string{models.FieldRole: "admin", models.FieldPassword: "ignored"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "admin", *sent.Metadata.Role)
	assert.Nil(t, sent.Metadata.Password, "password is never sent on update")
	assert.Nil(t, sent.Metadata.Birthdate)
}

func TestFormService_Images(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestFormService(t)

	d, err := svc.NewCreateDraft(ctx)
	require.NoError(t, err)

	png := &models.Upload{Filename: "a.png", ContentType: "image/png", Data: pngData}

	// Select.
	got, err := svc.SelectImage(ctx, d.ID, nil, png)
	require.NoError(t, err)
	assert.Equal(t, png, got.Image)
	assert.Equal(t, png.Fingerprint(), got.ImageInput)
	assert.Equal(t, PreviewURL(d.ID, png.Fingerprint()), got.Preview)

	img, err := svc.Image(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, png.Data, img.Data)

	// Remove clears the file, the preview and the control.
	got, err = svc.RemoveImage(ctx, d.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, got.Image)
	assert.Empty(t, got.Preview)
	assert.Empty(t, got.ImageInput)

	_, err = svc.Image(ctx, d.ID)
	assert.ErrorIs(t, err, ErrImageNotFound)

	// The same file can be selected again.
	got, err = svc.SelectImage(ctx, d.ID, nil, png)
	require.NoError(t, err)
	assert.Equal(t, png, got.Image)

	// A non-image file is refused and the held file stays.
	_, err = svc.SelectImage(ctx, d.ID, nil, &models.Upload{Filename: "a.txt", ContentType: "text/plain", Data: []byte("x")})
	assert.ErrorIs(t, err, validation.ErrInvalid)
	stored, err := svc.Draft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, png, stored.Image)
	assert.Equal(t, "Image must be a PNG or JPEG file", stored.Errors[models.FieldImage])

	// So is a file whose content does not match the declared type.
	_, err = svc.SelectImage(ctx, d.ID, nil, &models.Upload{Filename: "b.png", ContentType: "image/png", Data: []byte("<svg onload=x>")})
	assert.ErrorIs(t, err, validation.ErrInvalid)
	stored, err = svc.Draft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, png, stored.Image)

	// The held file is sent with the submission.
	var sent models.Payload
	users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.Payload) (*models.User, error) {
			sent = p
			return &models.User{ID: "7"}, nil
		})
	_, err = svc.Submit(ctx, d.ID, annFields(), nil)
	require.NoError(t, err)
	assert.Equal(t, png, sent.File)
}

func TestFormService_SelectSameImageIsNoop(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	users := NewMockUserGateway(ctrl)
	validator := NewMockFormValidator(ctrl)
	store := repositories.NewViewMemoryRepository(time.Minute)
	svc := NewFormService(store, users, validator)

	d, err := svc.NewCreateDraft(ctx)
	require.NoError(t, err)

	png := &models.Upload{Filename: "a.png", ContentType: "image/png", Data: []byte("PNG-A")}
	validator.EXPECT().CheckImage(png).Return("").Times(1)

	_, err = svc.SelectImage(ctx, d.ID, nil, png)
	require.NoError(t, err)
	_, err = svc.SelectImage(ctx, d.ID, nil, &models.Upload{Filename: "a.png", ContentType: "image/png", Data: []byte("PNG-A")})
	require.NoError(t, err)
}

func TestFormService_ToggleLanguage(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestFormService(t)

	d, err := svc.NewCreateDraft(ctx)
	require.NoError(t, err)

	_, err = svc.ToggleLanguage(ctx, d.ID, nil, "Klingon")
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	got, err := svc.ToggleLanguage(ctx, d.ID, map[string]string{models.FieldName: "Ann"}, "French")
	require.NoError(t, err)
	assert.Equal(t, models.LanguageSet{"French"}, got.Form.Languages)
	assert.Equal(t, "Ann", got.Form.Name, "posted fields are kept")

	got, err = svc.ToggleLanguage(ctx, d.ID, nil, "French")
	require.NoError(t, err)
	assert.Empty(t, got.Form.Languages)
}

func TestFormService_UnknownFieldAndDraft(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestFormService(t)

	_, err := svc.ApplyFields(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	d, err := svc.NewCreateDraft(ctx)
	require.NoError(t, err)

	_, err = svc.ChangeField(ctx, d.ID, "nickname", "x")
	assert.ErrorIs(t, err, models.ErrUnknownField)
}

func TestFormService_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockViewStore(ctrl)
	svc := NewFormService(store, NewMockUserGateway(ctrl), NewMockFormValidator(ctrl))

	boom := errors.New("redis down")
	store.EXPECT().SaveDraft(gomock.Any(), gomock.Any()).Return(boom)
	store.EXPECT().GetDraft(gomock.Any(), "d1").Return(nil, boom)

	_, err := svc.NewCreateDraft(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = svc.Draft(context.Background(), "d1")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDraftNotFound)
}
