package constants

// invisiface response codes
// these consist of 4 digit numbers
//
// the 1st 3 identify the scenario
// 4th indicates if the client should surface the note to the user. 0 means it does not need to. 1 means it should.

var NO_FACES_GLOBAL_NOISE_APPLIED uint = 2411 // cloak succeeded but only the weak whole-image fallback was applied
var NO_FACES_DETECTED uint = 2421             // protection check found nothing to score
var FACE_COUNT_MISMATCH uint = 3161           // comparison could not pair faces

const SERVICE_NAME = "InvisiFace API"
const SERVICE_DESCRIPTION = "InvisiFace API - Face Anonymizer and Digital Identity Protection System"

const CLOAKED_FILE_NAME = "cloaked_image.png"

const (
	MessageProtectionHigh   = "Excellent protection detected! %d face(s) found with low recognition confidence. The image appears well-protected against facial recognition systems."
	MessageProtectionMedium = "Good protection detected! %d face(s) found with moderate recognition confidence. The image has decent protection but could be strengthened."
	MessageProtectionLow    = "Limited protection detected! %d face(s) found with high recognition confidence. The image may be vulnerable to facial recognition systems. Consider applying stronger cloaking."
	MessageNoFacesDetected  = "No faces detected in image. This could mean: 1) Image contains no faces, 2) Faces are already heavily cloaked, or 3) Detection algorithm failed. Try uploading a clearer image with visible faces."
	MessageProtectionError  = "Error analyzing image: %s. Please try again with a different image."

	MessageImageCloaked       = "Image successfully cloaked"
	MessageGlobalNoiseApplied = "No faces detected. A light perturbation was applied to the whole image instead."
	MessageComparisonComplete = "Face comparison completed"
	MessageFaceCountMismatch  = "Face counts differ between the images, so faces could not be paired."
)
