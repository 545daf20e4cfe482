package i18n

var tips = map[Locale][]string{
	English: {
		"Describe lighting explicitly: golden hour, rim light or soft studio light changes the whole mood.",
		"Mention the lens and camera angle, e.g. 85mm portrait or low-angle wide shot.",
		"Reference images work best when they are sharp and well lit.",
		"Use the Manual Edit preset with analysis to pre-select fixes automatically.",
		"Short prompts suit Imagen; Stable Diffusion prefers comma-separated tags.",
		"The Background preset keeps the new background's aspect ratio.",
		"Add quality tags like 'highly detailed' or '8K' for crisper results.",
		"Refine a result with a short instruction such as 'make the sky warmer'.",
		"The JSON prompt preset can transfer the style of one photo onto another person.",
		"History keeps your last 30 generations; export the ones you like.",
	},
	Vietnamese: {
		"Mô tả ánh sáng cụ thể: giờ vàng, ánh sáng viền hoặc ánh sáng studio dịu sẽ thay đổi cả bầu không khí.",
		"Nêu rõ ống kính và góc máy, ví dụ chân dung 85mm hoặc góc rộng từ dưới lên.",
		"Ảnh tham chiếu cho kết quả tốt nhất khi sắc nét và đủ sáng.",
		"Dùng preset Chỉnh sửa thủ công kèm phân tích để tự động chọn các bản sửa.",
		"Prompt ngắn hợp với Imagen; Stable Diffusion thích các thẻ phân tách bằng dấu phẩy.",
		"Preset Thay nền giữ nguyên tỷ lệ khung hình của nền mới.",
		"Thêm thẻ chất lượng như 'chi tiết cao' hoặc '8K' để ảnh sắc nét hơn.",
		"Tinh chỉnh kết quả bằng một câu ngắn như 'làm bầu trời ấm hơn'.",
		"Preset prompt JSON có thể chuyển phong cách của một ảnh sang người khác.",
		"Lịch sử giữ 30 ảnh gần nhất; hãy xuất những ảnh bạn thích.",
	},
}

// Tips returns the loading-tip pool for a locale.
func Tips(l Locale) []string {
	if pool, ok := tips[l]; ok {
		return pool
	}
	return tips[English]
}
