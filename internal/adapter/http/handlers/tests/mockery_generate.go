package tests

// The service fakes in mocks_test.go are hand-written. To regenerate them with mockery instead:
//
//   go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name TaskService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename task_service_mock.go --with-expecter
//go:generate mockery --name SubmissionService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename submission_service_mock.go --with-expecter
//go:generate mockery --name ReviewService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename review_service_mock.go --with-expecter
//go:generate mockery --name PerformanceService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename performance_service_mock.go --with-expecter
