package query

// Fixed response strings. The router never returns an error to its
// caller; every failure mode maps onto one of these messages.
const (
	categoryListHeader = "We offer courses in the following categories:"
	noCategoriesMsg    = "No course categories found."

	groupedListHeader  = "Here are the available courses grouped by category:"
	groupedListTrailer = "Would you like to know more about any specific course?"

	fallbackMsg = "No specific category detected. Try asking about Python, Java, AI, Web Development, etc."
)
