package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/amelbk/stagelink/configs"
	"github.com/amelbk/stagelink/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfferLetterService renders an acceptance letter PDF for an accepted
// application and attaches the uploaded document to the application row.
// Meant to run in the background after the status change commits; every
// failure is logged and swallowed so it never affects the accept itself.
type OfferLetterService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewOfferLetterService(db *gorm.DB, notifier *NotificationService) *OfferLetterService {
	return &OfferLetterService{db: db, notifier: notifier}
}

func (s *OfferLetterService) GenerateForApplication(applicationID uuid.UUID) {
	var application models.Application
	err := s.db.
		Preload("Student").
		Preload("JobPost.Company").
		Where("id = ?", applicationID).
		First(&application).Error
	if err != nil {
		log.Printf("🔥 Offer letter: application %s not found: %v", applicationID, err)
		return
	}

	if application.Status != models.ApplicationStatusAccepted {
		return
	}
	if application.OfferLetterURL != nil {
		return
	}

	htmlData, err := s.renderLetterHTML(application)
	if err != nil {
		log.Printf("🔥 Failed to render offer letter HTML: %v", err)
		return
	}

	pdfBytes, err := renderPDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to render offer letter PDF: %v", err)
		return
	}

	uploadURL, err := uploadOfferLetter(pdfBytes, application.StudentID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload offer letter: %v", err)
		return
	}

	if err := s.db.Model(&models.Application{}).
		Where("id = ?", application.ID).
		Update("offer_letter_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to attach offer letter to application %s: %v", application.ID, err)
		return
	}

	message := fmt.Sprintf("Your offer letter for \"%s\" is ready", application.JobPost.Title)
	if _, err := s.notifier.Notify(application.Student.UserID, message, &uploadURL); err != nil {
		log.Printf("Failed to notify student %s about offer letter: %v", application.Student.UserID, err)
	}

	log.Printf("✅ Generated offer letter for application %s.", application.ID)
}

func (s *OfferLetterService) renderLetterHTML(application models.Application) (string, error) {
	tmpl, err := template.ParseFiles("templates/offer_letter.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName string
		CompanyName string
		JobTitle    string
		Date        string
	}{
		StudentName: application.Student.FirstName + " " + application.Student.LastName,
		CompanyName: application.JobPost.Company.Name,
		JobTitle:    application.JobPost.Title,
		Date:        time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func renderPDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadOfferLetter(fileBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("offer_letters/%s_%s", studentID, uuid.New().String()),
		Folder:       "stagelink_offer_letters",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
