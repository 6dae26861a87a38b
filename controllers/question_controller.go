package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tmnhat/learning-center-backend/models"
	"github.com/tmnhat/learning-center-backend/services"
)

type OptionInput struct {
	Content string `json:"content" binding:"required"`
	Correct bool   `json:"correct"`
}

type QuestionInput struct {
	Content    string                    `json:"content" binding:"required"`
	Type       models.QuestionType       `json:"type" binding:"required"`
	Complexity models.QuestionComplexity `json:"complexity" binding:"required"`
	OrderIndex int                       `json:"order_index"`
	Options    []OptionInput             `json:"options" binding:"required,min=1"`
}

// validateQuestionInput kiểm tra loại câu hỏi, độ khó và số lượng đáp án đúng:
// câu một đáp án phải có đúng 1 phương án đúng, câu nhiều đáp án ít nhất 2,
// câu tự luận chỉ cần có ít nhất một đáp án được chấp nhận
func validateQuestionInput(input QuestionInput) error {
	switch input.Type {
	case models.SingleAnswer, models.MultiAnswer, models.TextAnswer:
	default:
		return models.NewValidationError("Loại câu hỏi không hợp lệ")
	}

	switch input.Complexity {
	case models.ComplexityLow, models.ComplexityMedium, models.ComplexityHard:
	default:
		return models.NewValidationError("Độ khó câu hỏi không hợp lệ")
	}

	if len(input.Options) > models.MaxOptions {
		return models.NewValidationError(fmt.Sprintf("Câu hỏi chỉ được tối đa %d phương án", models.MaxOptions))
	}

	correctCount := 0
	for _, option := range input.Options {
		if option.Correct {
			correctCount++
		}
	}

	if correctCount == 0 {
		return models.NewValidationError("Câu hỏi phải có ít nhất một đáp án đúng")
	}
	if input.Type == models.SingleAnswer && correctCount != 1 {
		return models.NewValidationError("Câu hỏi một đáp án phải có đúng một đáp án đúng")
	}
	if input.Type == models.MultiAnswer && correctCount < 2 {
		return models.NewValidationError("Câu hỏi nhiều đáp án phải có ít nhất hai đáp án đúng")
	}
	return nil
}

// POST /api/tests/:id/questions
func CreateQuestion(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	testID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateQuestionInput(input); err != nil {
		respondError(c, err)
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationTestAccess(p, testID); err != nil {
		respondError(c, err)
		return
	}

	var test models.Test
	if err := db.First(&test, "id = ?", testID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài kiểm tra"})
		return
	}

	var questionCount int64
	db.Model(&models.Question{}).Where("test_id = ?", testID).Count(&questionCount)
	if questionCount >= int64(models.MaxQuestions) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Bài kiểm tra chỉ được tối đa %d câu hỏi", models.MaxQuestions),
		})
		return
	}

	question := models.Question{
		TestID:     testID,
		Content:    input.Content,
		Type:       input.Type,
		Complexity: input.Complexity,
		OrderIndex: input.OrderIndex,
	}
	for _, option := range input.Options {
		question.Options = append(question.Options, models.Option{
			Content: option.Content,
			Correct: option.Correct,
		})
	}

	if err := db.Create(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể tạo câu hỏi"})
		return
	}

	// Thêm câu hỏi có thể làm bài kiểm tra đủ điều kiện mở
	if err := refreshTestAvailable(db, testID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái bài kiểm tra"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Tạo câu hỏi thành công",
		"question": question,
	})
}

// GET /api/questions/:id
func GetQuestionByID(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	questionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.QuestionAccess(p, questionID); err != nil {
		respondError(c, err)
		return
	}

	var question models.Question
	if err := db.Preload("Options").First(&question, "id = ?", questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy câu hỏi"})
		return
	}

	// Không lộ đáp án đúng cho học viên
	if p.Role == models.RoleStudent {
		for i := range question.Options {
			question.Options[i].Correct = false
		}
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

type UpdateQuestionInput struct {
	Content    string                    `json:"content" binding:"required"`
	Complexity models.QuestionComplexity `json:"complexity" binding:"required"`
	OrderIndex int                       `json:"order_index"`
}

// PUT /api/questions/:id
func UpdateQuestion(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	questionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Complexity {
	case models.ComplexityLow, models.ComplexityMedium, models.ComplexityHard:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Độ khó câu hỏi không hợp lệ"})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationQuestionAccess(p, questionID); err != nil {
		respondError(c, err)
		return
	}

	var question models.Question
	if err := db.First(&question, "id = ?", questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy câu hỏi"})
		return
	}

	question.Content = input.Content
	question.Complexity = input.Complexity
	question.OrderIndex = input.OrderIndex

	if err := db.Save(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật câu hỏi"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Cập nhật câu hỏi thành công",
		"question": question,
	})
}

// DELETE /api/questions/:id
func DeleteQuestion(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	questionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationQuestionAccess(p, questionID); err != nil {
		respondError(c, err)
		return
	}

	var question models.Question
	if err := db.First(&question, "id = ?", questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy câu hỏi"})
		return
	}

	if err := db.Delete(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa câu hỏi"})
		return
	}

	// Bớt câu hỏi có thể làm bài kiểm tra không còn đủ điều kiện mở
	if err := refreshTestAvailable(db, question.TestID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái bài kiểm tra"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa câu hỏi thành công"})
}

type AddOptionsInput struct {
	Options []OptionInput `json:"options" binding:"required,min=1"`
}

// POST /api/questions/:id/options
// Kiểm tra sức chứa trước khi thêm, báo số chỗ còn lại nếu vượt quá
func AddOptions(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	questionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input AddOptionsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationQuestionAccess(p, questionID); err != nil {
		respondError(c, err)
		return
	}

	var question models.Question
	if err := db.First(&question, "id = ?", questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy câu hỏi"})
		return
	}

	var optionCount int64
	db.Model(&models.Option{}).Where("question_id = ?", questionID).Count(&optionCount)
	if optionCount+int64(len(input.Options)) > int64(models.MaxOptions) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Quá nhiều phương án, chỉ còn nhận được %d phương án", int64(models.MaxOptions)-optionCount),
		})
		return
	}

	options := make([]models.Option, 0, len(input.Options))
	for _, option := range input.Options {
		options = append(options, models.Option{
			QuestionID: questionID,
			Content:    option.Content,
			Correct:    option.Correct,
		})
	}

	if err := db.Create(&options).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể thêm phương án"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thêm phương án thành công",
		"options": options,
	})
}

// DELETE /api/questions/:id/options/:optionId
func RemoveOption(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	questionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	optionID, ok := parseIDParam(c, "optionId")
	if !ok {
		return
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationQuestionAccess(p, questionID); err != nil {
		respondError(c, err)
		return
	}

	// Phương án phải thuộc đúng câu hỏi
	var option models.Option
	if err := db.First(&option, "id = ? AND question_id = ?", optionID, questionID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phương án không thuộc câu hỏi này"})
		return
	}

	if err := db.Delete(&option).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa phương án"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Xóa phương án thành công"})
}

type ReplaceQuestionsInput struct {
	Questions []QuestionInput `json:"questions" binding:"required,min=1"`
}

// PUT /api/tests/:id/questions
// Thay toàn bộ câu hỏi của bài kiểm tra bằng danh sách mới
func ReplaceQuestionsForTest(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		respondError(c, err)
		return
	}

	testID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input ReplaceQuestionsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(input.Questions) > models.MaxQuestions {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Bài kiểm tra chỉ được tối đa %d câu hỏi", models.MaxQuestions),
		})
		return
	}
	for _, q := range input.Questions {
		if err := validateQuestionInput(q); err != nil {
			respondError(c, err)
			return
		}
	}

	db := getDB(c)
	validator := services.NewAccessValidator(services.NewAccessQueries(db))
	if err := validator.ModificationTestAccess(p, testID); err != nil {
		respondError(c, err)
		return
	}

	var test models.Test
	if err := db.First(&test, "id = ?", testID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy bài kiểm tra"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", testID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		for _, item := range input.Questions {
			question := models.Question{
				TestID:     testID,
				Content:    item.Content,
				Type:       item.Type,
				Complexity: item.Complexity,
				OrderIndex: item.OrderIndex,
			}
			for _, option := range item.Options {
				question.Options = append(question.Options, models.Option{
					Content: option.Content,
					Correct: option.Correct,
				})
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật câu hỏi"})
		return
	}

	if err := refreshTestAvailable(db, testID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái bài kiểm tra"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cập nhật câu hỏi thành công"})
}
