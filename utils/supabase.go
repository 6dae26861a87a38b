package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

const (
	homeworkBucket = "homeworks"

	// SignedLinkTTL là thời hạn của link tải tạm thời (24 giờ)
	SignedLinkTTL = 24 * 60 * 60
)

func newStorageClient() *storage.Client {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")
	return storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)
}

// HomeworkObjectPath là đường dẫn object của file bài tập trong bucket
// theo bài học và học viên
func HomeworkObjectPath(lessonID, studentID, filename string) string {
	return fmt.Sprintf("lessons/%s/students/%s/%s", lessonID, studentID, filename)
}

// UploadHomeworkToSupabase upload file bài tập lên Supabase Storage,
// trả về đường dẫn object để lưu vào database
func UploadHomeworkToSupabase(fileHeader *multipart.FileHeader, objectPath string) (string, error) {
	storageClient := newStorageClient()

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	options := storage.FileOptions{
		ContentType: &contentType,
	}

	if _, err := storageClient.UploadFile(homeworkBucket, objectPath, &buf, options); err != nil {
		return "", err
	}
	return objectPath, nil
}

// SignedHomeworkURL tạo link tải tạm thời cho file bài tập, hết hạn sau 24 giờ
func SignedHomeworkURL(objectPath string) (string, error) {
	storageClient := newStorageClient()

	resp, err := storageClient.CreateSignedUrl(homeworkBucket, objectPath, SignedLinkTTL)
	if err != nil {
		return "", err
	}
	return resp.SignedURL, nil
}

// DownloadHomeworkFromSupabase tải nội dung file bài tập về dưới dạng bytes
func DownloadHomeworkFromSupabase(objectPath string) ([]byte, error) {
	storageClient := newStorageClient()
	return storageClient.DownloadFile(homeworkBucket, objectPath)
}

// DeleteHomeworkFromSupabase gọi API Supabase Storage để xóa object của bài tập.
// Yêu cầu: SUPABASE_URL và SUPABASE_KEY (service role key có quyền xóa) đã set trong ENV.
func DeleteHomeworkFromSupabase(objectPath string) error {
	if objectPath == "" {
		return nil
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")
	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("SUPABASE_URL hoặc SUPABASE_KEY chưa cấu hình")
	}

	object := objectPath
	// bỏ query params nếu có
	if qIdx := strings.Index(object, "?"); qIdx != -1 {
		object = object[:qIdx]
	}
	if u, err := url.PathUnescape(object); err == nil {
		object = u
	}

	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", strings.TrimRight(supabaseURL, "/"), homeworkBucket, object)

	req, err := http.NewRequest("DELETE", deleteURL, nil)
	if err != nil {
		return err
	}
	// Supabase expects Authorization: Bearer <SERVICE_KEY> and apikey header
	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("apikey", supabaseKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	// Supabase trả 200 hoặc 204 khi xóa thành công
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("xóa file Supabase thất bại: status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}
