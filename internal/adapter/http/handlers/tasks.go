package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"worktrack/internal/adapter/http/dto"
	"worktrack/internal/adapter/http/mapper"
	"worktrack/internal/adapter/http/validation"
	"worktrack/internal/core/ports"
	"worktrack/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
	clock       ports.Clock
}

func NewTaskHandler(taskService ports.TaskService, clock ports.Clock) *TaskHandler {
	return &TaskHandler{taskService: taskService, clock: clock}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	filter, err := validation.BuildTaskFilter(c.Request.URL.Query())
	if err != nil {
		badRequest(c, apierrors.MsgInvalidQuery)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks, h.clock.Now()))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := pathID(c, apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, h.clock.Now()))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task, h.clock.Now()))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, err := bindWithPresence(c, &req)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), actor, taskID, input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, h.clock.Now()))
}

func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidStatusPayload)
		return
	}
	status, err := validation.BuildTaskStatus(req)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidStatusPayload)
		return
	}

	task, err := h.taskService.Transition(c.Request.Context(), actor, taskID, status)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task, h.clock.Now()))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), actor, taskID); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask, zap.Uint64("task_id", taskID))
		return
	}

	c.Status(http.StatusNoContent)
}
