package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
	"github.com/donlucho/ferreteria-api/internal/repo"
)

// ImportProductsHandler godoc
// @Summary Bulk import products from CSV
// @Description Accepts a multipart file field named "file" with columns name,description,sku,price,cost,stock,min_stock. Valid rows are created; invalid rows are reported and skipped.
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid input"
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing 'file' field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 7

	// header row
	if _, err := reader.Read(); err != nil {
		http.Error(w, "could not read CSV header", http.StatusBadRequest)
		return
	}

	result := ImportProductsResult{Errors: []ProductValidationError{}}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, ProductValidationError{
				Field:       fmt.Sprintf("line %d", line),
				Description: err.Error(),
			})
			continue
		}

		req, parseErrs := parseProductRecord(record, line)
		if len(parseErrs) > 0 {
			result.Errors = append(result.Errors, parseErrs...)
			continue
		}

		if validationErrors := validateProduct(req); len(validationErrors) > 0 {
			for _, ve := range validationErrors {
				ve.Field = fmt.Sprintf("line %d: %s", line, ve.Field)
				result.Errors = append(result.Errors, ve)
			}
			continue
		}

		now := time.Now().UTC().Format(time.RFC3339)
		_, err = productRepo.Create(models.Product{
			Name:        req.Name,
			Description: req.Description,
			SKU:         req.SKU,
			Price:       req.Price,
			Cost:        req.Cost,
			Stock:       req.Stock,
			MinStock:    req.MinStock,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			description := "could not create product"
			if errors.Is(err, repo.ErrDuplicatedValueUnique) {
				description = "product name duplicated"
			}
			result.Errors = append(result.Errors, ProductValidationError{
				Field:       fmt.Sprintf("line %d", line),
				Description: description,
			})
			continue
		}
		result.ImportedProductsCount++
	}

	logAction(r, "import products", "product", nil, map[string]any{
		"imported": result.ImportedProductsCount,
		"failed":   len(result.Errors),
	})
	if result.ImportedProductsCount > 0 {
		invalidateDashboard()
	}
	writeJSON(w, http.StatusOK, result)
}

func parseProductRecord(record []string, line int) (ProductRequest, []ProductValidationError) {
	var errs []ProductValidationError
	fieldErr := func(field, description string) {
		errs = append(errs, ProductValidationError{
			Field:       fmt.Sprintf("line %d: %s", line, field),
			Description: description,
		})
	}

	req := ProductRequest{
		Name:        record[0],
		Description: record[1],
		SKU:         record[2],
	}

	var err error
	if req.Price, err = strconv.ParseFloat(record[3], 64); err != nil {
		fieldErr("Price", "not a number")
	}
	if req.Cost, err = strconv.ParseFloat(record[4], 64); err != nil {
		fieldErr("Cost", "not a number")
	}
	if req.Stock, err = strconv.Atoi(record[5]); err != nil {
		fieldErr("Stock", "not an integer")
	}
	if req.MinStock, err = strconv.Atoi(record[6]); err != nil {
		fieldErr("MinStock", "not an integer")
	}
	return req, errs
}
