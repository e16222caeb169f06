package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/yoockh/jobboard/internal/kv"
	"github.com/yoockh/jobboard/internal/logger"
	"github.com/yoockh/jobboard/internal/models"
	"github.com/yoockh/jobboard/internal/repositories/kvstore"
	"github.com/yoockh/jobboard/internal/storage"
	"github.com/yoockh/jobboard/internal/utils"
)

type recordingProgress struct{ calls []string }

func (p *recordingProgress) Loading(context.Context) { p.calls = append(p.calls, "loading") }
func (p *recordingProgress) Success(context.Context) { p.calls = append(p.calls, "success") }

type fakeUploader struct {
	objects map[string][]byte
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	b, _ := io.ReadAll(r)
	if u.objects == nil {
		u.objects = map[string][]byte{}
	}
	u.objects[name] = b
	return "gs://bucket/" + name, nil
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func newApplicationService(uploader *fakeUploader, progress Progress) (ApplicationService, kvstore.ApplicationRepository) {
	repo := kvstore.NewApplicationRepo(kv.NewMemoryStore(), logger.Discard())
	var up storage.Uploader
	if uploader != nil {
		up = uploader
	}
	return NewApplicationService(repo, up, progress, logger.Discard()), repo
}

func resumeBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

var engineerJob = models.JobSnapshot{Title: "Engineer", Company: "Acme", Location: "Remote", Role: "Backend"}

func TestSubmitRecordsApplication(t *testing.T) {
	progress := &recordingProgress{}
	svc, repo := newApplicationService(nil, progress)
	data := resumeBytes(10 * 1024)

	app, err := svc.Submit(context.Background(), ApplicationInput{
		Job:    engineerJob,
		Name:   "  Jane Doe ",
		Email:  "jane@x.com",
		Resume: &Resume{Name: "resume.pdf", Type: "application/pdf", Size: int64(len(data)), Body: bytes.NewReader(data)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if app.Name != "Jane Doe" || app.ResumeName != "resume.pdf" || app.ResumeType != "application/pdf" {
		t.Errorf("app = %#v", app)
	}
	if app.Job != engineerJob {
		t.Errorf("job snapshot = %#v", app.Job)
	}
	if time.Since(app.SubmittedAt) > time.Minute || app.SubmittedAt.Location() != time.UTC {
		t.Errorf("submittedAt = %v", app.SubmittedAt)
	}

	apps, _ := repo.List(context.Background())
	if len(apps) != 1 {
		t.Fatalf("expected 1 stored application, got %d", len(apps))
	}
	_, decoded, err := utils.DecodeDataURL(apps[0].ResumeDataURL)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("stored resume differs from upload")
	}

	if strings.Join(progress.calls, ",") != "loading,success" {
		t.Errorf("progress calls = %v", progress.calls)
	}
}

func TestSubmitValidation(t *testing.T) {
	file := func() *Resume { return &Resume{Name: "cv.txt", Body: strings.NewReader("cv")} }
	tests := []struct {
		name string
		in   ApplicationInput
	}{
		{"no name", ApplicationInput{Email: "a@b.c", Resume: file()}},
		{"blank name", ApplicationInput{Name: "   ", Email: "a@b.c", Resume: file()}},
		{"no email", ApplicationInput{Name: "A", Resume: file()}},
		{"no file", ApplicationInput{Name: "A", Email: "a@b.c"}},
		{"unnamed file", ApplicationInput{Name: "A", Email: "a@b.c", Resume: &Resume{Body: strings.NewReader("x")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := &recordingProgress{}
			svc, repo := newApplicationService(nil, progress)

			_, err := svc.Submit(context.Background(), tt.in)
			if !utils.IsCode(err, utils.CodeInvalidArgument) {
				t.Fatalf("err = %v", err)
			}
			if utils.Message(err, "") != MsgApplicationIncomplete {
				t.Errorf("message = %q", utils.Message(err, ""))
			}
			if apps, _ := repo.List(context.Background()); len(apps) != 0 {
				t.Error("invalid submission was recorded")
			}
			if len(progress.calls) != 0 {
				t.Error("progress shown for a blocked submission")
			}
		})
	}
}

func TestSubmitReadFailureNotRecorded(t *testing.T) {
	svc, repo := newApplicationService(nil, nil)

	_, err := svc.Submit(context.Background(), ApplicationInput{
		Name: "A", Email: "a@b.c",
		Resume: &Resume{Name: "cv.pdf", Body: errReader{}},
	})
	if utils.Message(err, "") != MsgResumeUnreadable {
		t.Fatalf("err = %v", err)
	}
	if apps, _ := repo.List(context.Background()); len(apps) != 0 {
		t.Error("failed read was recorded")
	}
}

func TestSubmitTooLarge(t *testing.T) {
	svc, _ := newApplicationService(nil, nil)

	big := bytes.NewReader(make([]byte, MaxResumeBytes+1))
	_, err := svc.Submit(context.Background(), ApplicationInput{
		Name: "A", Email: "a@b.c",
		Resume: &Resume{Name: "huge.pdf", Body: big}, // size unknown up front
	})
	if !utils.IsCode(err, utils.CodeInvalidArgument) || utils.Message(err, "") != MsgResumeTooLarge {
		t.Errorf("err = %v", err)
	}
}

func TestSubmitSniffsMissingType(t *testing.T) {
	svc, _ := newApplicationService(nil, nil)

	pdf := []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")
	app, err := svc.Submit(context.Background(), ApplicationInput{
		Name: "A", Email: "a@b.c",
		Resume: &Resume{Name: "cv", Body: bytes.NewReader(pdf)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if app.ResumeType != "application/pdf" {
		t.Errorf("sniffed type = %q", app.ResumeType)
	}
	if !strings.HasPrefix(app.ResumeDataURL, "data:application/pdf;base64,") {
		t.Errorf("data url = %.40s", app.ResumeDataURL)
	}
}

func TestSubmitArchivesResume(t *testing.T) {
	up := &fakeUploader{}
	svc, _ := newApplicationService(up, nil)

	app, err := svc.Submit(context.Background(), ApplicationInput{
		Name: "A", Email: "a@b.c",
		Resume: &Resume{Name: "CV.PDF", Type: "application/pdf", Body: strings.NewReader("pdf")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(app.ResumePath, "gs://bucket/resumes/") || !strings.HasSuffix(app.ResumePath, ".pdf") {
		t.Errorf("resume path = %q", app.ResumePath)
	}
	if len(up.objects) != 1 {
		t.Errorf("uploaded %d objects", len(up.objects))
	}
}

func TestSubmitArchiveFailureStillRecords(t *testing.T) {
	up := &fakeUploader{err: errors.New("bucket missing")}
	svc, repo := newApplicationService(up, nil)

	app, err := svc.Submit(context.Background(), ApplicationInput{
		Name: "A", Email: "a@b.c",
		Resume: &Resume{Name: "cv.txt", Body: strings.NewReader("cv")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if app.ResumePath != "" {
		t.Errorf("resume path = %q", app.ResumePath)
	}
	if apps, _ := repo.List(context.Background()); len(apps) != 1 {
		t.Error("application not recorded")
	}
}

func TestDelayProgressHonorsContext(t *testing.T) {
	p := DelayProgress{LoadingDelay: time.Hour, SuccessDelay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		p.Loading(ctx)
		p.Success(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("DelayProgress ignored a cancelled context")
	}

	d := NewDelayProgress()
	if d.LoadingDelay != 500*time.Millisecond || d.SuccessDelay != 700*time.Millisecond {
		t.Errorf("defaults = %v / %v", d.LoadingDelay, d.SuccessDelay)
	}
}
