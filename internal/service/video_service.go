package service

import (
	"context"
	"courtside_backend/internal/model"
	"courtside_backend/internal/repository"
	"courtside_backend/internal/util"
	"courtside_backend/pkg/logger"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VideoService struct {
	VideoRepo *repository.VideoRepository
	Storage   *StorageService
}

func NewVideoService(videoRepo *repository.VideoRepository, storage *StorageService) *VideoService {
	return &VideoService{VideoRepo: videoRepo, Storage: storage}
}

// ingestVideo stages the upload locally, probes it, generates a thumbnail,
// then pushes both through the storage provider. Probe or thumbnail failures
// are logged and tolerated; the upload itself must succeed.
func (s *VideoService) ingestVideo(ctx context.Context, file *multipart.FileHeader, prefix string) (videoURL, thumbURL string, info *util.VideoInfo, err error) {
	src, err := file.Open()
	if err != nil {
		return "", "", nil, err
	}
	defer src.Close()

	tmpDir := os.TempDir()
	name := uuid.New().String()
	ext := filepath.Ext(file.Filename)
	tmpPath := filepath.Join(tmpDir, name+ext)

	out, err := os.Create(tmpPath)
	if err != nil {
		return "", "", nil, err
	}
	if _, err := out.ReadFrom(src); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return "", "", nil, err
	}
	out.Close()
	defer os.Remove(tmpPath)

	info, probeErr := util.ProbeVideo(tmpPath)
	if probeErr != nil {
		logger.Log.Warn("video probe failed", zap.String("file", file.Filename), zap.Error(probeErr))
		info = &util.VideoInfo{}
	}

	objectName := fmt.Sprintf("%s/%s%s", prefix, name, ext)
	videoURL, err = s.Storage.UploadFile(ctx, objectName, tmpPath, file.Header.Get("Content-Type"))
	if err != nil {
		return "", "", nil, err
	}

	thumbPath := filepath.Join(tmpDir, name+".jpg")
	if err := util.GenerateThumbnail(tmpPath, thumbPath, "00:00:01"); err == nil {
		defer os.Remove(thumbPath)
		thumbObject := fmt.Sprintf("%s/thumbs/%s.jpg", prefix, name)
		if url, err := s.Storage.UploadFile(ctx, thumbObject, thumbPath, "image/jpeg"); err == nil {
			thumbURL = url
		}
	} else {
		logger.Log.Warn("thumbnail generation failed", zap.String("file", file.Filename), zap.Error(err))
	}

	return videoURL, thumbURL, info, nil
}

type VideoLessonRequest struct {
	SkillID     uint   `form:"skillId" binding:"required"`
	SportID     uint   `form:"sportId"`
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Published   bool   `form:"published"`
}

func (s *VideoService) UploadLesson(ctx context.Context, coachID uint, req VideoLessonRequest, file *multipart.FileHeader) (*model.VideoLesson, error) {
	videoURL, thumbURL, info, err := s.ingestVideo(ctx, file, "lessons")
	if err != nil {
		return nil, err
	}

	lesson := &model.VideoLesson{
		SkillID:     req.SkillID,
		SportID:     req.SportID,
		CoachID:     coachID,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    videoURL,
		Thumbnail:   thumbURL,
		Duration:    info.Duration,
		Width:       info.Width,
		Height:      info.Height,
		Published:   req.Published,
	}
	if err := s.VideoRepo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *VideoService) GetLesson(id uint) (*model.VideoLesson, error) {
	return s.VideoRepo.FindLessonByID(id)
}

func (s *VideoService) ListLessonsBySkill(skillID uint, publishedOnly bool) ([]model.VideoLesson, error) {
	return s.VideoRepo.ListLessonsBySkill(skillID, publishedOnly)
}

func (s *VideoService) SubmitReview(ctx context.Context, studentID, skillID uint, file *multipart.FileHeader) (*model.ReviewVideo, error) {
	videoURL, thumbURL, info, err := s.ingestVideo(ctx, file, "reviews")
	if err != nil {
		return nil, err
	}

	review := &model.ReviewVideo{
		StudentID: studentID,
		SkillID:   skillID,
		VideoURL:  videoURL,
		Thumbnail: thumbURL,
		Duration:  info.Duration,
		Status:    "pending",
	}
	if err := s.VideoRepo.CreateReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *VideoService) GetReview(id uint) (*model.ReviewVideo, error) {
	return s.VideoRepo.FindReviewByID(id)
}

func (s *VideoService) ListReviewsByStudent(studentID uint) ([]model.ReviewVideo, error) {
	return s.VideoRepo.ListReviewsByStudent(studentID)
}

func (s *VideoService) ListPendingReviews(page, limit int) ([]model.ReviewVideo, int64, error) {
	return s.VideoRepo.ListPendingReviews(page, limit)
}

type ReviewNoteRequest struct {
	Timestamp float64 `json:"timestamp"`
	Comment   string  `json:"comment" binding:"required"`
}

// AddReviewNote attaches coach feedback and flips the review to reviewed.
func (s *VideoService) AddReviewNote(coachID, reviewID uint, req ReviewNoteRequest) (*model.ReviewNote, error) {
	review, err := s.VideoRepo.FindReviewByID(reviewID)
	if err != nil {
		return nil, err
	}

	note := &model.ReviewNote{
		ReviewVideoID: review.ID,
		CoachID:       coachID,
		Timestamp:     req.Timestamp,
		Comment:       req.Comment,
	}
	if err := s.VideoRepo.CreateNote(note); err != nil {
		return nil, err
	}

	if review.Status != "reviewed" {
		review.Status = "reviewed"
		if err := s.VideoRepo.UpdateReview(review); err != nil {
			return nil, err
		}
	}
	return note, nil
}
