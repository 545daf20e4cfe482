// Package i18n resolves the studio locale and holds the small message
// catalog the command shell needs: error texts and loading tips.
package i18n

import (
	"golang.org/x/text/language"
)

type Locale string

const (
	English    Locale = "en"
	Vietnamese Locale = "vi"
)

var supported = []language.Tag{language.English, language.Vietnamese}

var matcher = language.NewMatcher(supported)

// Resolve maps any BCP 47 preference list ("vi-VN", "en-US,en;q=0.9") onto
// a supported locale. Unparseable input falls back to English.
func Resolve(pref string) Locale {
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return English
	}
	if supported[idx] == language.Vietnamese {
		return Vietnamese
	}
	return English
}

func (l Locale) Tag() language.Tag {
	if l == Vietnamese {
		return language.Vietnamese
	}
	return language.English
}

type Key string

const (
	MsgCredentialMissing  Key = "credentialMissing"
	MsgContentRejected    Key = "contentRejected"
	MsgUnknown            Key = "unknown"
	MsgTimeout            Key = "timeout"
	MsgBusy               Key = "busy"
	MsgInvalidFileType    Key = "invalidFileType"
	MsgHeicConversion     Key = "heicConversion"
	MsgImageProcessing    Key = "imageProcessing"
	MsgPromptRequired     Key = "promptRequired"
	MsgPromptOrImage      Key = "promptOrImageRequired"
	MsgSelectPose         Key = "selectPose"
	MsgDescribeMockup     Key = "describeMockup"
	MsgPresetNotReady     Key = "presetNotReady"
	MsgMalformedResponse  Key = "malformedResponse"
	MsgNothingToRefine    Key = "nothingToRefine"
	MsgEnterCredential    Key = "enterCredential"
	MsgCredentialSaved    Key = "credentialSaved"
	MsgHistoryTruncated   Key = "historyTruncated"
	MsgNoImageForAnalysis Key = "noImageForAnalysis"
)

var messages = map[Locale]map[Key]string{
	English: {
		MsgCredentialMissing:  "An API key is required. Run `studio key set` or set GEMINI_API_KEY.",
		MsgContentRejected:    "The request was rejected by the content safety filter. Please adjust the prompt or images.",
		MsgUnknown:            "An unknown error occurred. Please try again.",
		MsgTimeout:            "The AI service did not answer in time. Please try again.",
		MsgBusy:               "This operation is already running.",
		MsgInvalidFileType:    "Invalid file type. Please upload an image.",
		MsgHeicConversion:     "Could not convert the HEIC image. The file may be corrupted or unsupported.",
		MsgImageProcessing:    "Could not process the image.",
		MsgPromptRequired:     "Please enter a prompt first.",
		MsgPromptOrImage:      "Please enter a prompt or add an image first.",
		MsgSelectPose:         "Please select a pose.",
		MsgDescribeMockup:     "Please describe the mockup scene.",
		MsgPresetNotReady:     "The selected preset is missing required images or options.",
		MsgMalformedResponse:  "The AI returned a response in an unexpected format.",
		MsgNothingToRefine:    "Generate an image before refining it.",
		MsgEnterCredential:    "Enter your Gemini API key: ",
		MsgCredentialSaved:    "API key saved.",
		MsgHistoryTruncated:   "Older history items were not persisted because local storage is full.",
		MsgNoImageForAnalysis: "Add an image to analyze first.",
	},
	Vietnamese: {
		MsgCredentialMissing:  "Cần có khóa API. Chạy `studio key set` hoặc đặt GEMINI_API_KEY.",
		MsgContentRejected:    "Yêu cầu đã bị bộ lọc an toàn nội dung từ chối. Vui lòng điều chỉnh prompt hoặc hình ảnh.",
		MsgUnknown:            "Đã xảy ra lỗi không xác định. Vui lòng thử lại.",
		MsgTimeout:            "Dịch vụ AI không phản hồi kịp thời. Vui lòng thử lại.",
		MsgBusy:               "Thao tác này đang chạy.",
		MsgInvalidFileType:    "Loại tệp không hợp lệ. Vui lòng tải lên một hình ảnh.",
		MsgHeicConversion:     "Không thể chuyển đổi ảnh HEIC. Tệp có thể bị hỏng hoặc không được hỗ trợ.",
		MsgImageProcessing:    "Không thể xử lý hình ảnh.",
		MsgPromptRequired:     "Vui lòng nhập prompt trước.",
		MsgPromptOrImage:      "Vui lòng nhập prompt hoặc thêm hình ảnh trước.",
		MsgSelectPose:         "Vui lòng chọn một tư thế.",
		MsgDescribeMockup:     "Vui lòng mô tả bối cảnh mockup.",
		MsgPresetNotReady:     "Preset đã chọn còn thiếu hình ảnh hoặc tùy chọn bắt buộc.",
		MsgMalformedResponse:  "AI trả về phản hồi không đúng định dạng.",
		MsgNothingToRefine:    "Hãy tạo ảnh trước khi tinh chỉnh.",
		MsgEnterCredential:    "Nhập khóa Gemini API của bạn: ",
		MsgCredentialSaved:    "Đã lưu khóa API.",
		MsgHistoryTruncated:   "Một số mục lịch sử cũ không được lưu vì bộ nhớ cục bộ đã đầy.",
		MsgNoImageForAnalysis: "Hãy thêm ảnh để phân tích trước.",
	},
}

func Text(l Locale, key Key) string {
	if m, ok := messages[l]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages[English][key]; ok {
		return s
	}
	return string(key)
}
