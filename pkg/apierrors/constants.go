package apierrors

const (
	MsgInvalidTaskID            = "invalidTaskID"
	MsgInvalidSubmissionID      = "invalidSubmissionID"
	MsgInvalidUserID            = "invalidUserID"
	MsgInvalidWorkspaceID       = "invalidWorkspaceID"
	MsgInvalidTaskPayload       = "invalidTaskPayload"
	MsgInvalidStatusPayload     = "invalidStatusPayload"
	MsgInvalidSubmissionPayload = "invalidSubmissionPayload"
	MsgInvalidReviewPayload     = "invalidReviewPayload"
	MsgInvalidQuery             = "invalidQuery"
	MsgInvalidTransition        = "invalidTransition"
	MsgInvalidSchedule          = "invalidSchedule"
	MsgInvalidPoints            = "invalidPoints"
	MsgNotAssignee              = "notAssignee"
	MsgDuplicateSubmission      = "duplicateSubmission"
	MsgEmptyReport              = "emptyReport"
	MsgAlreadyReviewed          = "alreadyReviewed"
	MsgTaskClosed               = "taskClosed"
	MsgUnauthorized             = "unauthorized"
	MsgUnauthenticated          = "unauthenticated"
	MsgTaskNotFound             = "taskNotFound"
	MsgSubmissionNotFound       = "submissionNotFound"
	MsgUserNotFound             = "userNotFound"
	MsgStoreUnavailable         = "storeUnavailable"
	MsgFailListTask             = "errorListTask"
	MsgFailCreateTask           = "failCreateTask"
	MsgFailUpdateTask           = "failUpdateTask"
	MsgFailDeleteTask           = "failDeleteTask"
	MsgFailSubmit               = "failSubmit"
	MsgFailReview               = "failReview"
	MsgFailListSubmissions      = "failListSubmissions"
	MsgFailPerformance          = "failPerformance"
)
