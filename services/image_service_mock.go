package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/brightshine/laundry-api/utils"
)

// MockImageService is an in-memory ImageService for testing. It runs
// the same validation as the S3 implementation so rejection paths can
// be exercised without a bucket.
type MockImageService struct {
	images map[string][]byte
	seq    int
	mu     sync.RWMutex
}

// NewMockImageService creates an empty mock image store
func NewMockImageService() *MockImageService {
	return &MockImageService{images: make(map[string][]byte)}
}

// SetAsMockForTesting sets this mock as the global image service instance
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage validates and stores the image in memory
func (m *MockImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	imageKey := fmt.Sprintf("%s/mock_%d_%s", profileImagePrefix, m.seq, fileHeader.Filename)
	m.images[imageKey] = content

	return imageKey, nil
}

// GetImageURL returns a fake presigned URL for a stored key
func (m *MockImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.images[imageKey]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("image not found in mock store: %s", imageKey)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", imageKey), nil
}

// DeleteImage removes an image from the in-memory store
func (m *MockImageService) DeleteImage(imageKey string) error {
	m.mu.Lock()
	delete(m.images, imageKey)
	m.mu.Unlock()
	return nil
}

// FileExists checks if an image exists in the mock store
func (m *MockImageService) FileExists(imageKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.images[imageKey]
	return exists
}

// Clear removes all images from the mock store
func (m *MockImageService) Clear() {
	m.mu.Lock()
	m.images = make(map[string][]byte)
	m.mu.Unlock()
}
