package services

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-admin/internal/facades"
	"github.com/sbilibin2017/gw-user-admin/internal/logger"
	"github.com/sbilibin2017/gw-user-admin/internal/models"
	"github.com/sbilibin2017/gw-user-admin/internal/repositories"
	"github.com/sbilibin2017/gw-user-admin/internal/validation"
)

var (
	// ErrDraftNotFound is returned when a draft does not exist or has expired.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrUserNotFound is returned when the user to edit does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnknownLanguage is returned when a toggle names a language outside the vocabulary.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrImageNotFound is returned when a draft holds no image to preview.
	ErrImageNotFound = errors.New("no image selected")
	// ErrSubmitInFlight is returned when a draft is submitted while its previous submission is pending.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrSubmitFailed is returned when the user API did not accept a submission.
	ErrSubmitFailed = errors.New("submission failed")
)

// NoticeSubmitFailed is shown on the form after a failed submission.
const NoticeSubmitFailed = "Failed to save user. Please try again."

// PreviewURL is the address serving the image held by a draft.
// The fingerprint busts browser caches when another file is selected.
func PreviewURL(draftID, fingerprint string) string {
	return fmt.Sprintf("/users/drafts/%s/image?v=%s", draftID, fingerprint)
}

// FormService drives the create and update user forms.
type FormService struct {
	store     ViewStore
	users     UserGateway
	validator FormValidator
}

// NewFormService creates a new FormService.
func NewFormService(store ViewStore, users UserGateway, validator FormValidator) *FormService {
	return &FormService{
		store:     store,
		users:     users,
		validator: validator,
	}
}

// NewCreateDraft opens an empty create form.
func (s *FormService) NewCreateDraft(ctx context.Context) (*models.Draft, error) {
	d := &models.Draft{
		ID:   uuid.NewString(),
		Mode: models.ModeCreate,
		Form: models.NewCreateForm(),
	}
	if err := s.store.SaveDraft(ctx, d); err != nil {
		logger.Log.Errorw("failed to save draft", "draftID", d.ID, "error", err)
		return nil, err
	}
	return d, nil
}

// NewUpdateDraft opens an update form filled from the user with the given id.
func (s *FormService) NewUpdateDraft(ctx context.Context, userID models.UserID) (*models.Draft, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, facades.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		logger.Log.Errorw("failed to load user for editing", "userID", userID, "error", err)
		return nil, err
	}

	d := &models.Draft{
		ID:      uuid.NewString(),
		Mode:    models.ModeUpdate,
		UserID:  user.ID,
		Form:    models.NewUpdateForm(*user),
		Preview: user.Image,
	}
	if d.UserID == "" {
		d.UserID = userID
	}
	if err := s.store.SaveDraft(ctx, d); err != nil {
		logger.Log.Errorw("failed to save draft", "draftID", d.ID, "error", err)
		return nil, err
	}
	return d, nil
}

// Draft returns the current state of a form. Submitting reflects the
// submission lock, so it clears itself once the lock is released or expires.
func (s *FormService) Draft(ctx context.Context, id string) (*models.Draft, error) {
	d, err := s.store.GetDraft(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, id)
		}
		logger.Log.Errorw("failed to load draft", "draftID", id, "error", err)
		return nil, err
	}

	inFlight, err := s.store.SubmitInFlight(ctx, id)
	if err != nil {
		logger.Log.Warnw("failed to read submission lock", "draftID", id, "error", err)
	}
	d.Submitting = inFlight
	return d, nil
}

// ChangeField sets a single form field.
func (s *FormService) ChangeField(ctx context.Context, id, field, value string) (*models.Draft, error) {
	return s.ApplyFields(ctx, id, map[string]string{field: value})
}

// ApplyFields sets every posted field of a form. A field whose value changes
// loses its error message. Nothing is stored when a field is unknown.
func (s *FormService) ApplyFields(ctx context.Context, id string, values map[string]string) (*models.Draft, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyFields(d, values); err != nil {
		return d, err
	}
	return d, s.save(ctx, d)
}

// ToggleLanguage adds the language to the form when absent and removes it when present.
func (s *FormService) ToggleLanguage(ctx context.Context, id string, values map[string]string, language string) (*models.Draft, error) {
	if !models.IsLanguage(language) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyFields(d, values); err != nil {
		return d, err
	}
	d.Form.Languages = d.Form.Languages.Toggle(language)
	delete(d.Errors, models.FieldLanguages)
	return d, s.save(ctx, d)
}

// SelectImage holds the uploaded file for submission and points the preview at it.
// Selecting the file the control already holds changes nothing.
func (s *FormService) SelectImage(ctx context.Context, id string, values map[string]string, upload *models.Upload) (*models.Draft, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyFields(d, values); err != nil {
		return d, err
	}

	if msg := s.selectImage(d, upload); msg != "" {
		if err := s.save(ctx, d); err != nil {
			return d, err
		}
		return d, &validation.ValidationError{Fields: map[string]string{models.FieldImage: msg}}
	}
	return d, s.save(ctx, d)
}

// selectImage holds upload in d and returns the image field error, if any.
func (s *FormService) selectImage(d *models.Draft, upload *models.Upload) string {
	fingerprint := upload.Fingerprint()
	if upload == nil || fingerprint == d.ImageInput {
		return ""
	}
	if msg := s.validator.CheckImage(upload); msg != "" {
		setFieldError(d, models.FieldImage, msg)
		return msg
	}
	d.Image = upload
	d.Preview = PreviewURL(d.ID, fingerprint)
	d.ImageInput = fingerprint
	delete(d.Errors, models.FieldImage)
	return ""
}

// RemoveImage clears the selected file, the preview and the file control,
// so that the same file can be selected again.
func (s *FormService) RemoveImage(ctx context.Context, id string, values map[string]string) (*models.Draft, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyFields(d, values); err != nil {
		return d, err
	}
	d.Image = nil
	d.Preview = ""
	d.ImageInput = ""
	delete(d.Errors, models.FieldImage)
	return d, s.save(ctx, d)
}

// Image returns the file held by a draft for its preview.
func (s *FormService) Image(ctx context.Context, id string) (*models.Upload, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Image == nil {
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, id)
	}
	return d.Image, nil
}

// DismissNotice keeps the posted fields and clears the transient notice of a form.
func (s *FormService) DismissNotice(ctx context.Context, id string, values map[string]string) (*models.Draft, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyFields(d, values); err != nil {
		return d, err
	}
	d.Notice = ""
	return d, s.save(ctx, d)
}

// Submit applies the posted fields and file, validates the form and sends it
// to the user API.
//
// Field errors are written into the draft without any request being made.
// On success the draft is discarded; on failure it keeps its values and
// carries a notice. A second submit while one is pending returns ErrSubmitInFlight
// and leaves the draft untouched.
func (s *FormService) Submit(ctx context.Context, id string, values map[string]string, upload *models.Upload) (*models.Draft, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}

	acquired, err := s.store.AcquireSubmit(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to lock draft for submission", "draftID", id, "error", err)
		return d, err
	}
	if !acquired {
		logger.Log.Infow("submission already in flight", "draftID", id)
		return d, fmt.Errorf("%w: %s", ErrSubmitInFlight, id)
	}
	defer func() {
		if err := s.store.ReleaseSubmit(ctx, id); err != nil {
			logger.Log.Errorw("failed to release submission lock", "draftID", id, "error", err)
		}
	}()

	if err := applyFields(d, values); err != nil {
		return d, err
	}
	imageErr := s.selectImage(d, upload)

	in := d.Form.Input(d.Mode)
	in.Image = d.Image
	meta, err := s.validator.Validate(d.Mode, in)
	fieldErrs := make(map[string]string)
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		maps.Copy(fieldErrs, verr.Fields)
	} else if err != nil {
		return d, errors.Join(err, s.save(ctx, d))
	}
	if imageErr != "" {
		fieldErrs[models.FieldImage] = imageErr
	}
	if len(fieldErrs) > 0 {
		d.Errors = fieldErrs
		if err := s.save(ctx, d); err != nil {
			return d, err
		}
		return d, fmt.Errorf("submit draft %s: %w", id, &validation.ValidationError{Fields: fieldErrs})
	}

	payload := models.Payload{Metadata: meta, File: d.Image}
	if d.Mode == models.ModeCreate {
		_, err = s.users.Create(ctx, payload)
	} else {
		_, err = s.users.Update(ctx, d.UserID, payload)
	}
	if err != nil {
		logger.Log.Warnw("user submission failed", "draftID", id, "mode", d.Mode, "userID", d.UserID, "error", err)
		d.Errors = nil
		d.Notice = NoticeSubmitFailed
		if saveErr := s.save(ctx, d); saveErr != nil {
			return d, saveErr
		}
		return d, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	logger.Log.Infow("user submitted", "draftID", id, "mode", d.Mode, "userID", d.UserID)
	if err := s.store.DeleteDraft(ctx, id); err != nil {
		logger.Log.Errorw("failed to discard submitted draft", "draftID", id, "error", err)
	}
	return d, nil
}

func (s *FormService) save(ctx context.Context, d *models.Draft) error {
	if err := s.store.SaveDraft(ctx, d); err != nil {
		logger.Log.Errorw("failed to save draft", "draftID", d.ID, "error", err)
		return err
	}
	return nil
}

func applyFields(d *models.Draft, values map[string]string) error {
	for field, value := range values {
		before := d.Form.Value(field)
		if err := d.Form.Set(field, value); err != nil {
			return err
		}
		if d.Form.Value(field) != before {
			delete(d.Errors, field)
		}
	}
	return nil
}

func setFieldError(d *models.Draft, field, msg string) {
	if d.Errors == nil {
		d.Errors = make(map[string]string)
	}
	d.Errors[field] = msg
}
